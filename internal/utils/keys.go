package utils

import (
	"encoding/hex"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix       = "user-"
	WalletAddressPrefix = "wallet-"
)

// NewUserAPIKey returns a new opaque API key.
func NewUserAPIKey() string {
	return UserKeyPrefix + newHexID()
}

// NewWalletAddress returns a new wallet address.
func NewWalletAddress() string {
	return WalletAddressPrefix + newHexID()
}

// newHexID prefers a time-based UUID and falls back to a random one when the
// node clock sequence cannot be read.
func newHexID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		id = uuid.New()
	}
	return hex.EncodeToString(id[:])
}
