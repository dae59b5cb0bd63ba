package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesCode(t *testing.T) {
	wrapped := fmt.Errorf("make transaction: %w", ErrNotEnoughAmount)

	assert.True(t, stderrors.Is(wrapped, ErrNotEnoughAmount))
	assert.False(t, stderrors.Is(wrapped, ErrInvalidAmount))

	clone := &DomainError{Code: ErrUserNotFound.Code, Message: "different text"}
	assert.True(t, stderrors.Is(clone, ErrUserNotFound))
}

func TestAsDomain(t *testing.T) {
	de, ok := AsDomain(fmt.Errorf("outer: %w", ErrWalletLimitReached))
	assert.True(t, ok)
	assert.Equal(t, "WALLET_LIMIT_REACHED", de.Code)
	assert.Equal(t, "Cannot create more than 3 wallets", de.Message)

	_, ok = AsDomain(stderrors.New("boom"))
	assert.False(t, ok)
}
