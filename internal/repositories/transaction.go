package repositories

import (
	"context"

	"btcwallet/internal/models"
)

// TransactionRepository is the append-only transfer log.
// Every listing is ordered by insertion.
type TransactionRepository interface {
	// CreateTransaction appends tx and assigns its ID
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetAllUserTransactions returns every transaction touching a wallet
	// currently owned by apiKey. A transfer between two of the user's own
	// wallets is returned once.
	GetAllUserTransactions(ctx context.Context, apiKey string) ([]*models.Transaction, error)

	GetAllWalletTransactions(ctx context.Context, address string) ([]*models.Transaction, error)
	GetAllTransactions(ctx context.Context) ([]*models.Transaction, error)
}
