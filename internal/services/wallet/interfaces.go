package wallet

import "context"

type Service interface {
	// CreateWallet opens a wallet for apiKey, funded with the initial balance
	CreateWallet(ctx context.Context, apiKey string) (*WalletResponse, error)

	// GetWallet returns a wallet owned by apiKey
	GetWallet(ctx context.Context, apiKey, address string) (*WalletResponse, error)
}
