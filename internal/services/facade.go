// Package services wires the ledger interactors into one entry point.
package services

import (
	"btcwallet/internal/metrics"
	"btcwallet/internal/repositories"
	"btcwallet/internal/services/admin"
	"btcwallet/internal/services/currency"
	"btcwallet/internal/services/fee"
	"btcwallet/internal/services/transaction"
	"btcwallet/internal/services/user"
	"btcwallet/internal/services/wallet"
	"btcwallet/internal/utils"

	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators shared by the interactors. Only
// Converter and Authorizer are required.
type Dependencies struct {
	Converter  currency.Converter
	Authorizer admin.Authorizer
	Fees       fee.Calculator
	NewUserKey user.KeyGenerator
	NewAddress wallet.AddressGenerator
	Wallet     wallet.WalletConfig
	Metrics    *metrics.Collector
	Logger     logrus.FieldLogger
}

// Core bundles the four interactors that make up the ledger.
type Core struct {
	Users        user.Service
	Wallets      wallet.Service
	Transactions transaction.Service
	Admin        admin.Service
}

func NewCore(store repositories.Store, deps Dependencies) *Core {
	if deps.Fees == nil {
		deps.Fees = fee.NewCalculator()
	}
	if deps.NewUserKey == nil {
		deps.NewUserKey = utils.NewUserAPIKey
	}
	if deps.NewAddress == nil {
		deps.NewAddress = utils.NewWalletAddress
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}

	var (
		walletMetrics wallet.MetricsCollector
		txMetrics     transaction.MetricsCollector
	)
	if deps.Metrics != nil {
		walletMetrics = deps.Metrics
		txMetrics = deps.Metrics
	}

	return &Core{
		Users:   user.NewService(store.Users(), deps.NewUserKey, deps.Logger),
		Wallets: wallet.NewService(store, deps.Converter, deps.NewAddress, deps.Wallet, walletMetrics, deps.Logger),
		Transactions: transaction.NewService(
			store,
			transaction.NewProcessor(deps.Fees),
			txMetrics,
			deps.Logger,
		),
		Admin: admin.NewService(store, deps.Authorizer, deps.Logger),
	}
}
