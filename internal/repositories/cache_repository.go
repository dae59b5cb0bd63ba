package repositories

import (
	"context"

	"btcwallet/internal/models"
)

// WalletCache is an optional read-through cache in front of the wallet table.
//
// Every address carries an invalidation version. GetWallet returns it with a
// miss, and SetWallet only stores the entry while the version is unchanged,
// so a fill computed from a row read before a commit cannot overwrite the
// invalidation that commit issued.
type WalletCache interface {
	// GetWallet reports a miss as a nil wallet.
	GetWallet(ctx context.Context, address string) (*models.Wallet, int64, error)
	SetWallet(ctx context.Context, wallet *models.Wallet, version int64) error
	// DeleteWallets bumps the version of each address and drops its entry.
	DeleteWallets(ctx context.Context, addresses ...string) error
}

// NoopWalletCache never holds anything.
type NoopWalletCache struct{}

func (NoopWalletCache) GetWallet(context.Context, string) (*models.Wallet, int64, error) {
	return nil, 0, nil
}

func (NoopWalletCache) SetWallet(context.Context, *models.Wallet, int64) error { return nil }

func (NoopWalletCache) DeleteWallets(context.Context, ...string) error { return nil }
