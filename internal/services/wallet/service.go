package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/logging"
	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
	"btcwallet/internal/services/currency"

	"github.com/sirupsen/logrus"
)

type service struct {
	store      repositories.Store
	converter  currency.Converter
	newAddress AddressGenerator
	config     WalletConfig
	metrics    MetricsCollector
	log        logrus.FieldLogger
}

// NewService creates a new wallet service
func NewService(
	store repositories.Store,
	converter currency.Converter,
	newAddress AddressGenerator,
	config WalletConfig,
	metrics MetricsCollector,
	log logrus.FieldLogger,
) Service {
	if store == nil {
		panic("store is required")
	}
	if converter == nil {
		panic("converter is required")
	}
	if newAddress == nil {
		panic("address generator is required")
	}

	// Set default configuration values if not provided
	if config.MaxWalletsPerPerson == 0 {
		config.MaxWalletsPerPerson = DefaultMaxWallets
	}
	if config.InitialBalance == 0 {
		config.InitialBalance = DefaultInitialBalance
	}
	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &service{
		store:      store,
		converter:  converter,
		newAddress: newAddress,
		config:     config,
		metrics:    metrics,
		log:        log.WithField("service", "wallet"),
	}
}

func (s *service) CreateWallet(ctx context.Context, apiKey string) (*WalletResponse, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OperationCreateWallet, time.Since(start)) }()

	var wallet *models.Wallet
	// the count and the insert share a unit of work so concurrent requests
	// cannot push a user past the limit
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetUserForUpdate(ctx, apiKey); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		owned, err := tx.Wallets().GetUserWallets(ctx, apiKey)
		if err != nil {
			return err
		}
		if len(owned) >= s.config.MaxWalletsPerPerson {
			return apperrors.ErrWalletLimitReached
		}

		wallet, err = tx.Wallets().CreateWallet(ctx, apiKey, s.newAddress(), s.config.InitialBalance)
		return err
	})
	if err != nil {
		return nil, s.fail(OperationCreateWallet, err)
	}

	s.metrics.RecordWalletCreated()
	s.log.WithFields(logrus.Fields{
		"api_key": logging.MaskKey(apiKey),
		"address": wallet.Address,
	}).Info("wallet created")

	return s.respond(ctx, OperationCreateWallet, wallet)
}

func (s *service) GetWallet(ctx context.Context, apiKey, address string) (*WalletResponse, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OperationGetWallet, time.Since(start)) }()

	if _, err := s.store.Users().GetUser(ctx, apiKey); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, s.fail(OperationGetWallet, apperrors.ErrUserNotFound)
		}
		return nil, s.fail(OperationGetWallet, fmt.Errorf("failed to get user: %w", err))
	}

	wallet, err := s.store.Wallets().GetWallet(ctx, address)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, s.fail(OperationGetWallet, apperrors.ErrWalletNotFound)
		}
		return nil, s.fail(OperationGetWallet, fmt.Errorf("failed to get wallet: %w", err))
	}

	if !wallet.OwnedBy(apiKey) {
		return nil, s.fail(OperationGetWallet, apperrors.ErrNotThisUsersWallet)
	}

	return s.respond(ctx, OperationGetWallet, wallet)
}

// respond quotes the wallet in fiat. A failed quote does not undo a wallet
// that was just created.
func (s *service) respond(ctx context.Context, operation string, wallet *models.Wallet) (*WalletResponse, error) {
	fiat, err := s.converter.ConvertBTCToFiat(ctx, wallet.Balance, s.config.Currency)
	if err != nil {
		s.log.WithError(err).WithField("address", wallet.Address).Warn("fiat conversion failed")
		return nil, s.fail(operation, apperrors.ErrUnsupportedCurrency)
	}

	return &WalletResponse{
		WalletAddress: wallet.Address,
		BalanceBTC:    currency.SatoshiToBTC(wallet.Balance).InexactFloat64(),
		BalanceUSD:    fiat,
	}, nil
}

func (s *service) fail(operation string, err error) error {
	code := "internal"
	if de, ok := apperrors.AsDomain(err); ok {
		code = de.Code
	} else {
		s.log.WithError(err).WithField("operation", operation).Error("wallet operation failed")
	}
	s.metrics.RecordError(operation, code)
	return err
}
