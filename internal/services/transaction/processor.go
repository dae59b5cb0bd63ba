package transaction

import (
	"context"
	"errors"
	"fmt"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/models"
	"btcwallet/internal/repositories"
	"btcwallet/internal/services/fee"
)

type Processor struct {
	fees fee.Calculator
}

func NewProcessor(fees fee.Calculator) *Processor {
	if fees == nil {
		panic("fee calculator is required")
	}
	return &Processor{fees: fees}
}

// Process re-reads both wallets under lock, checks the balance and writes the
// new balances together with the log record. Locks are taken in address order.
func (p *Processor) Process(ctx context.Context, tx repositories.Store, t Transfer) (*TransferResult, error) {
	source, destination, err := p.lock(ctx, tx.Wallets(), t.Source, t.Destination)
	if err != nil {
		return nil, err
	}

	charge := p.fees.Calculate(source, destination, t.Amount)
	if source.Balance < t.Amount {
		return nil, apperrors.ErrNotEnoughAmount
	}

	if source.Address != destination.Address {
		source.Balance -= t.Amount
		destination.Balance += t.Amount - charge

		if err := tx.Wallets().UpdateBalance(ctx, source.Address, source.Balance); err != nil {
			return nil, err
		}
		if err := tx.Wallets().UpdateBalance(ctx, destination.Address, destination.Balance); err != nil {
			return nil, err
		}
	} else if charge != 0 {
		// a self transfer only costs the fee
		source.Balance -= charge
		if err := tx.Wallets().UpdateBalance(ctx, source.Address, source.Balance); err != nil {
			return nil, err
		}
	}

	record := &models.Transaction{
		Source:      t.Source,
		Destination: t.Destination,
		Amount:      t.Amount,
		Fee:         charge,
	}
	if err := tx.Transactions().CreateTransaction(ctx, record); err != nil {
		return nil, err
	}

	return &TransferResult{Source: source, Destination: destination, Transaction: record}, nil
}

func (p *Processor) lock(ctx context.Context, wallets repositories.WalletRepository, source, destination string) (*models.Wallet, *models.Wallet, error) {
	if source == destination {
		w, err := lockOne(ctx, wallets, source, apperrors.ErrSourceWalletNotFound)
		if err != nil {
			return nil, nil, err
		}
		return w, w, nil
	}

	first, second := source, destination
	firstErr, secondErr := apperrors.ErrSourceWalletNotFound, apperrors.ErrDestinationWalletNotFound
	if destination < source {
		first, second = second, first
		firstErr, secondErr = secondErr, firstErr
	}

	a, err := lockOne(ctx, wallets, first, firstErr)
	if err != nil {
		return nil, nil, err
	}
	b, err := lockOne(ctx, wallets, second, secondErr)
	if err != nil {
		return nil, nil, err
	}
	if first == source {
		return a, b, nil
	}
	return b, a, nil
}

func lockOne(ctx context.Context, wallets repositories.WalletRepository, address string, notFound error) (*models.Wallet, error) {
	w, err := wallets.GetWalletForUpdate(ctx, address)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to lock wallet %s: %w", address, err)
	}
	return w, nil
}
