package repositories

import (
	"context"
	"errors"
	"fmt"

	"btcwallet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db    *gorm.DB
	cache WalletCache

	// set when the repository is bound to a gorm transaction; cache entries
	// for these addresses are dropped once the transaction commits
	touched map[string]struct{}
}

// NewWalletRepository creates a gorm backed WalletRepository. A nil cache
// disables caching.
func NewWalletRepository(db *gorm.DB, cache WalletCache) WalletRepository {
	return newWalletRepository(db, cache)
}

func newWalletRepository(db *gorm.DB, cache WalletCache) *walletRepository {
	if cache == nil {
		cache = NoopWalletCache{}
	}
	return &walletRepository{db: db, cache: cache}
}

func (r *walletRepository) inTx() bool {
	return r.touched != nil
}

func (r *walletRepository) CreateWallet(ctx context.Context, ownerKey, address string, initialBalance int64) (*models.Wallet, error) {
	wallet := &models.Wallet{
		Address:  address,
		OwnerKey: ownerKey,
		Balance:  initialBalance,
	}
	// Seq comes back through RETURNING
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrWalletExists
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return wallet, nil
}

func (r *walletRepository) GetWallet(ctx context.Context, address string) (*models.Wallet, error) {
	if r.inTx() {
		return r.get(r.db.WithContext(ctx), address)
	}

	cached, version, cacheErr := r.cache.GetWallet(ctx, address)
	if cacheErr == nil && cached != nil {
		return cached, nil
	}

	wallet, err := r.get(r.db.WithContext(ctx), address)
	if err != nil {
		return nil, err
	}

	// a stale version makes the cache refuse the fill
	if cacheErr == nil {
		_ = r.cache.SetWallet(ctx, wallet, version)
	}
	return wallet, nil
}

func (r *walletRepository) GetWalletForUpdate(ctx context.Context, address string) (*models.Wallet, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), address)
}

func (r *walletRepository) get(db *gorm.DB, address string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Where("address = ?", address).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetUserWallets(ctx context.Context, ownerKey string) ([]*models.Wallet, error) {
	var wallets []*models.Wallet
	err := r.db.WithContext(ctx).
		Where("owner_key = ?", ownerKey).
		Order("seq").
		Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user wallets: %w", err)
	}
	return wallets, nil
}

func (r *walletRepository) GetAllWallets(ctx context.Context) ([]*models.Wallet, error) {
	var wallets []*models.Wallet
	if err := r.db.WithContext(ctx).Order("seq").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to get wallets: %w", err)
	}
	return wallets, nil
}

func (r *walletRepository) UpdateBalance(ctx context.Context, address string, balance int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("address = ?", address).
		Update("balance", balance)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrBalanceTargetMissing, address)
	}

	if r.inTx() {
		r.touched[address] = struct{}{}
		return nil
	}
	_ = r.cache.DeleteWallets(ctx, address)
	return nil
}
