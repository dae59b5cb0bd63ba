package transaction

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
	store     repositories.Store
	processor TransferProcessor
	metrics   MetricsCollector
	log       logrus.FieldLogger
}

// NewService creates a new transaction service
func NewService(store repositories.Store, processor TransferProcessor, metrics MetricsCollector, log logrus.FieldLogger) Service {
	if store == nil {
		panic("store is required")
	}
	if processor == nil {
		panic("processor is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &service{
		store:     store,
		processor: processor,
		metrics:   metrics,
		log:       log.WithField("service", "transaction"),
	}
}

func (s *service) MakeTransaction(ctx context.Context, req MakeTransactionRequest) (*MakeTransactionResponse, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OperationMakeTransaction, time.Since(start)) }()

	if req.Amount < 0 {
		return nil, s.fail(OperationMakeTransaction, apperrors.ErrInvalidAmount)
	}

	if err := s.validate(ctx, req); err != nil {
		return nil, s.fail(OperationMakeTransaction, err)
	}

	var result *TransferResult
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		var err error
		result, err = s.processor.Process(ctx, tx, Transfer{
			Source:      req.Source,
			Destination: req.Destination,
			Amount:      req.Amount,
		})
		return err
	})
	if err != nil {
		return nil, s.fail(OperationMakeTransaction, err)
	}

	s.metrics.RecordTransaction(result.Transaction.Amount, result.Transaction.Fee)
	s.log.WithFields(logrus.Fields{
		"api_key":     logging.MaskKey(req.APIKey),
		"source":      req.Source,
		"destination": req.Destination,
		"amount":      req.Amount,
		"fee":         result.Transaction.Fee,
	}).Info("transfer completed")

	return &MakeTransactionResponse{
		AmountLeftBTC: currency.SatoshiToBTC(result.Source.Balance).InexactFloat64(),
	}, nil
}

// validate checks the request in the order its failures are reported.
func (s *service) validate(ctx context.Context, req MakeTransactionRequest) error {
	if err := s.requireUser(ctx, req.APIKey); err != nil {
		return err
	}

	source, err := s.store.Wallets().GetWallet(ctx, req.Source)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return apperrors.ErrSourceWalletNotFound
		}
		return fmt.Errorf("failed to get source wallet: %w", err)
	}

	if _, err := s.store.Wallets().GetWallet(ctx, req.Destination); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return apperrors.ErrDestinationWalletNotFound
		}
		return fmt.Errorf("failed to get destination wallet: %w", err)
	}

	if !source.OwnedBy(req.APIKey) {
		return apperrors.ErrIncorrectAPIKey
	}
	return nil
}

func (s *service) GetTransactions(ctx context.Context, req GetTransactionsRequest) ([]*models.Transaction, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OperationGetTransactions, time.Since(start)) }()

	if err := s.requireUser(ctx, req.APIKey); err != nil {
		return nil, s.fail(OperationGetTransactions, err)
	}

	if req.WalletAddress == nil {
		txs, err := s.store.Transactions().GetAllUserTransactions(ctx, req.APIKey)
		if err != nil {
			return nil, s.fail(OperationGetTransactions, fmt.Errorf("failed to get user transactions: %w", err))
		}
		return txs, nil
	}

	address := *req.WalletAddress
	// any existing wallet may be listed; ownership is not checked here
	if _, err := s.store.Wallets().GetWallet(ctx, address); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, s.fail(OperationGetTransactions, apperrors.ErrWalletNotFound)
		}
		return nil, s.fail(OperationGetTransactions, fmt.Errorf("failed to get wallet: %w", err))
	}

	txs, err := s.store.Transactions().GetAllWalletTransactions(ctx, address)
	if err != nil {
		return nil, s.fail(OperationGetTransactions, fmt.Errorf("failed to get wallet transactions: %w", err))
	}
	return txs, nil
}

func (s *service) requireUser(ctx context.Context, apiKey string) error {
	if _, err := s.store.Users().GetUser(ctx, apiKey); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return nil
}

func (s *service) fail(operation string, err error) error {
	code := "internal"
	if de, ok := apperrors.AsDomain(err); ok {
		code = de.Code
	} else {
		s.log.WithError(err).WithField("operation", operation).Error("transaction operation failed")
	}
	s.metrics.RecordError(operation, code)
	return err
}
