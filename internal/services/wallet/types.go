package wallet

import (
	"time"

	"btcwallet/internal/services/currency"
)

// WalletResponse is what callers see of a wallet.
type WalletResponse struct {
	WalletAddress string  `json:"wallet_address"`
	BalanceBTC    float64 `json:"balance_btc"`
	BalanceUSD    float64 `json:"balance_usd"`
}

// WalletConfig holds configuration for wallet operations
type WalletConfig struct {
	MaxWalletsPerPerson int
	InitialBalance      int64
	Currency            currency.FiatCurrency
}

// AddressGenerator returns a fresh, unique wallet address.
type AddressGenerator func() string

// MetricsCollector defines the interface for collecting wallet metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordWalletCreated()
	RecordError(operation, code string)
}
