package transaction

import (
	"time"

	"btcwallet/internal/models"
)

// MakeTransactionRequest asks to move Amount satoshis from Source to
// Destination on behalf of APIKey, who must own Source.
type MakeTransactionRequest struct {
	APIKey      string
	Source      string
	Destination string
	Amount      int64
}

type MakeTransactionResponse struct {
	AmountLeftBTC float64 `json:"amount_left_btc"`
}

// GetTransactionsRequest lists the user's history, or the history of one
// wallet when WalletAddress is set.
type GetTransactionsRequest struct {
	APIKey        string
	WalletAddress *string
}

// Transfer is a validated request handed to the Processor.
type Transfer struct {
	Source      string
	Destination string
	Amount      int64
}

// TransferResult carries the state after a committed transfer.
type TransferResult struct {
	Source      *models.Wallet
	Destination *models.Wallet
	Transaction *models.Transaction
}

// MetricsCollector defines the interface for collecting transfer metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordTransaction(amount, fee int64)
	RecordError(operation, code string)
}
