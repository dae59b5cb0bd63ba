package errors

var (
	ErrSourceWalletNotFound = &DomainError{
		Code:    "SOURCE_WALLET_NOT_FOUND",
		Message: "Transaction's source wallet not found",
	}
	ErrDestinationWalletNotFound = &DomainError{
		Code:    "DESTINATION_WALLET_NOT_FOUND",
		Message: "Transaction's destination wallet not found",
	}
	ErrIncorrectAPIKey = &DomainError{
		Code:    "INCORRECT_API_KEY",
		Message: "Provided api key does not own source wallet",
	}
	ErrNotEnoughAmount = &DomainError{
		Code:    "NOT_ENOUGH_AMOUNT_ON_SOURCE_ACCOUNT",
		Message: "Not enough coins on source wallet to complete transaction",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
)
