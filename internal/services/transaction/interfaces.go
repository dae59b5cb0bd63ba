package transaction

import (
	"context"

	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
)

type Service interface {
	MakeTransaction(ctx context.Context, req MakeTransactionRequest) (*MakeTransactionResponse, error)
	GetTransactions(ctx context.Context, req GetTransactionsRequest) ([]*models.Transaction, error)
}

// TransferProcessor applies a transfer inside an open unit of work.
type TransferProcessor interface {
	Process(ctx context.Context, tx repositories.Store, t Transfer) (*TransferResult, error)
}
