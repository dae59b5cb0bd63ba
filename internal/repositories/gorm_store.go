package repositories

import (
	"context"

	"gorm.io/gorm"
)

type gormStore struct {
	db    *gorm.DB
	cache WalletCache

	users        *userRepository
	wallets      *walletRepository
	transactions *transactionRepository

	// true for the Store handed to an ExecuteInTransaction callback
	bound bool
}

// NewGormStore returns a Store backed by db. A nil cache disables caching.
func NewGormStore(db *gorm.DB, cache WalletCache) Store {
	return newGormStore(db, cache, false)
}

func newGormStore(db *gorm.DB, cache WalletCache, bound bool) *gormStore {
	wallets := newWalletRepository(db, cache)
	if bound {
		wallets.touched = make(map[string]struct{})
	}
	return &gormStore{
		db:           db,
		cache:        wallets.cache,
		users:        &userRepository{db: db},
		wallets:      wallets,
		transactions: &transactionRepository{db: db},
		bound:        bound,
	}
}

func (s *gormStore) Users() UserRepository               { return s.users }
func (s *gormStore) Wallets() WalletRepository           { return s.wallets }
func (s *gormStore) Transactions() TransactionRepository { return s.transactions }

// ExecuteInTransaction runs fn inside a database transaction. Nested calls
// join the outer transaction.
func (s *gormStore) ExecuteInTransaction(ctx context.Context, fn func(tx Store) error) error {
	if s.bound {
		return fn(s)
	}

	var touched map[string]struct{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := newGormStore(tx, s.cache, true)
		touched = txStore.wallets.touched
		return fn(txStore)
	})
	if err != nil {
		return err
	}

	if len(touched) > 0 {
		addresses := make([]string, 0, len(touched))
		for address := range touched {
			addresses = append(addresses, address)
		}
		_ = s.cache.DeleteWallets(ctx, addresses...)
	}
	return nil
}
