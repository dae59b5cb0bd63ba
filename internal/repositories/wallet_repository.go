package repositories

import (
	"context"
	"errors"

	"btcwallet/internal/models"
)

var (
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrWalletExists         = errors.New("wallet already exists")
	ErrBalanceTargetMissing = errors.New("balance update targets a missing wallet")
)

// WalletRepository defines the interface for wallet storage operations
type WalletRepository interface {
	CreateWallet(ctx context.Context, ownerKey, address string, initialBalance int64) (*models.Wallet, error)
	GetWallet(ctx context.Context, address string) (*models.Wallet, error)

	// GetWalletForUpdate reads the wallet and locks it for the rest of the
	// unit of work. Outside a unit of work it behaves like GetWallet.
	GetWalletForUpdate(ctx context.Context, address string) (*models.Wallet, error)

	// GetUserWallets returns the wallets of ownerKey in creation order
	GetUserWallets(ctx context.Context, ownerKey string) ([]*models.Wallet, error)
	GetAllWallets(ctx context.Context) ([]*models.Wallet, error)

	// UpdateBalance overwrites the balance of an existing wallet. Calling it
	// for an unknown address is a programming error.
	UpdateBalance(ctx context.Context, address string, balance int64) error
}
