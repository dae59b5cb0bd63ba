// Package admin reports on the ledger as a whole.
package admin

import (
	"context"
	"fmt"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/models"
	"btcwallet/internal/repositories"

	"github.com/sirupsen/logrus"
)

type Service interface {
	// GetStatistics counts transactions and sums collected fees
	GetStatistics(ctx context.Context, adminKey string) (*models.Statistics, error)

	// Audit checks that balances plus fees still add up to what was issued
	Audit(ctx context.Context) (*AuditReport, error)
}

// AuditReport is the outcome of a ledger audit. Issued is what wallet creation
// put into circulation; Balances plus Fees must equal it.
type AuditReport struct {
	Wallets  int   `json:"wallets" yaml:"wallets"`
	Issued   int64 `json:"issued" yaml:"issued"`
	Balances int64 `json:"balances" yaml:"balances"`
	Fees     int64 `json:"fees" yaml:"fees"`
}

// Drift is zero for a consistent ledger.
func (r *AuditReport) Drift() int64 {
	return r.Balances + r.Fees - r.Issued
}

func (r *AuditReport) Balanced() bool {
	return r.Drift() == 0
}

type service struct {
	store          repositories.Store
	auth           Authorizer
	initialBalance int64
	log            logrus.FieldLogger
}

func NewService(store repositories.Store, auth Authorizer, log logrus.FieldLogger) Service {
	if store == nil {
		panic("store is required")
	}
	if auth == nil {
		panic("authorizer is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{
		store:          store,
		auth:           auth,
		initialBalance: models.InitialWalletValueSatoshis,
		log:            log.WithField("service", "admin"),
	}
}

func (s *service) GetStatistics(ctx context.Context, adminKey string) (*models.Statistics, error) {
	if !s.auth.Authorize(adminKey) {
		s.log.Warn("statistics requested with an incorrect admin key")
		return nil, apperrors.ErrIncorrectAdminKey
	}

	txs, err := s.store.Transactions().GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	stats := &models.Statistics{NumberOfTransactions: len(txs)}
	for _, tx := range txs {
		stats.Profit += tx.Fee
	}
	return stats, nil
}

func (s *service) Audit(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{}
	// on the memory backend no transfer can land between the two reads
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		wallets, err := tx.Wallets().GetAllWallets(ctx)
		if err != nil {
			return err
		}
		txs, err := tx.Transactions().GetAllTransactions(ctx)
		if err != nil {
			return err
		}

		report.Wallets = len(wallets)
		report.Issued = int64(len(wallets)) * s.initialBalance
		for _, w := range wallets {
			report.Balances += w.Balance
		}
		for _, t := range txs {
			report.Fees += t.Fee
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger audit failed: %w", err)
	}

	entry := s.log.WithFields(logrus.Fields{
		"wallets":  report.Wallets,
		"balances": report.Balances,
		"fees":     report.Fees,
		"drift":    report.Drift(),
	})
	if report.Balanced() {
		entry.Debug("ledger audit passed")
	} else {
		entry.Warn("ledger audit found drift")
	}
	return report, nil
}
