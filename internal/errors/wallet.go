package errors

import (
	"fmt"

	"btcwallet/internal/models"
)

var (
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "Wallet not found",
	}
	ErrWalletLimitReached = &DomainError{
		Code:    "WALLET_LIMIT_REACHED",
		Message: fmt.Sprintf("Cannot create more than %d wallets", models.MaxWalletsPerPerson),
	}
	ErrNotThisUsersWallet = &DomainError{
		Code:    "NOT_THIS_USERS_WALLET",
		Message: "Provided wallet doesn't belong to provided user",
	}
	ErrUnsupportedCurrency = &DomainError{
		Code:    "UNSUPPORTED_CURRENCY",
		Message: "Unsupported Currency",
	}
)
