package memory

import (
	"context"
	"fmt"

	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
)

type walletRepository struct {
	view
}

func (r *walletRepository) CreateWallet(_ context.Context, ownerKey, address string, initialBalance int64) (*models.Wallet, error) {
	var (
		wallet models.Wallet
		err    error
	)
	r.write(func() {
		if _, ok := r.s.wallets[address]; ok {
			err = repositories.ErrWalletExists
			return
		}
		now := r.s.now()
		wallet = models.Wallet{
			Address:   address,
			OwnerKey:  ownerKey,
			Balance:   initialBalance,
			CreatedAt: now,
			UpdatedAt: now,
			Seq:       int64(len(r.s.order) + 1),
		}
		stored := wallet
		r.s.wallets[address] = &stored
		r.s.order = append(r.s.order, address)
	})
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) GetWallet(_ context.Context, address string) (*models.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wallet, ok := r.s.wallets[address]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	c := *wallet
	return &c, nil
}

func (r *walletRepository) GetWalletForUpdate(ctx context.Context, address string) (*models.Wallet, error) {
	return r.GetWallet(ctx, address)
}

func (r *walletRepository) GetUserWallets(_ context.Context, ownerKey string) ([]*models.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Wallet
	for _, address := range r.s.order {
		w := r.s.wallets[address]
		if w.OwnerKey == ownerKey {
			c := *w
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *walletRepository) GetAllWallets(_ context.Context) ([]*models.Wallet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Wallet, 0, len(r.s.order))
	for _, address := range r.s.order {
		c := *r.s.wallets[address]
		out = append(out, &c)
	}
	return out, nil
}

// UpdateBalance panics when address is unknown.
func (r *walletRepository) UpdateBalance(_ context.Context, address string, balance int64) error {
	r.write(func() {
		wallet, ok := r.s.wallets[address]
		if !ok {
			panic(fmt.Sprintf("memory: %v: %s", repositories.ErrBalanceTargetMissing, address))
		}
		wallet.Balance = balance
		wallet.UpdatedAt = r.s.now()
	})
	return nil
}
