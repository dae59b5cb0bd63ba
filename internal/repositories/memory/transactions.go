package memory

import (
	"context"
	"sort"

	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
)

type transactionRepository struct {
	view
}

func (r *transactionRepository) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	r.write(func() {
		r.s.lastID++
		tx.ID = r.s.lastID
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = r.s.now()
		}
		stored := *tx
		r.s.txs = append(r.s.txs, &stored)
	})
	return nil
}

// GetAllUserTransactions collects the history of every wallet the user owns
// and merges it, keeping one copy of transfers between the user's own wallets.
func (r *transactionRepository) GetAllUserTransactions(_ context.Context, apiKey string) ([]*models.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[uint64]struct{})
	var out []*models.Transaction
	for _, address := range r.s.order {
		if r.s.wallets[address].OwnerKey != apiKey {
			continue
		}
		for _, tx := range r.walletTransactions(address) {
			if _, dup := seen[tx.ID]; dup {
				continue
			}
			seen[tx.ID] = struct{}{}
			out = append(out, tx)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *transactionRepository) GetAllWalletTransactions(_ context.Context, address string) ([]*models.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.walletTransactions(address), nil
}

func (r *transactionRepository) GetAllTransactions(_ context.Context) ([]*models.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Transaction, len(r.s.txs))
	for i, tx := range r.s.txs {
		c := *tx
		out[i] = &c
	}
	return out, nil
}

// caller holds mu
func (r *transactionRepository) walletTransactions(address string) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range r.s.txs {
		if tx.Touches(address) {
			c := *tx
			out = append(out, &c)
		}
	}
	return out
}

var _ repositories.TransactionRepository = (*transactionRepository)(nil)
