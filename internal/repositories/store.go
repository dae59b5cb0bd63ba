package repositories

import "context"

// Store groups the ledger repositories behind a single unit of work.
//
// Repositories obtained from the Store passed to ExecuteInTransaction see and
// write the same transactional state; when the callback returns an error (or
// panics) none of its writes become visible.
type Store interface {
	Users() UserRepository
	Wallets() WalletRepository
	Transactions() TransactionRepository

	ExecuteInTransaction(ctx context.Context, fn func(tx Store) error) error
}
