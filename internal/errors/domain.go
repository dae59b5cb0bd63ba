// Package errors defines the ledger's domain error taxonomy. Every expected
// business-rule failure is one of the sentinels below and is matched with
// errors.Is; anything else is an internal failure.
package errors

import stderrors "errors"

// DomainError is an expected, user-facing failure identified by a stable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code so that copies of a sentinel compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// AsDomain extracts the DomainError from err, if any.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "User not found",
	}
	ErrInvalidRequest = &DomainError{
		Code:    "INVALID_REQUEST",
		Message: "invalid request",
	}
)
