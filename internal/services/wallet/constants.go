package wallet

import (
	"btcwallet/internal/models"
	"btcwallet/internal/services/currency"
)

// Default configuration values
const (
	DefaultCurrency       = currency.USD
	DefaultMaxWallets     = models.MaxWalletsPerPerson
	DefaultInitialBalance = models.InitialWalletValueSatoshis
)

// Operation names used for metrics and logs
const (
	OperationCreateWallet = "create_wallet"
	OperationGetWallet    = "get_wallet"
)
