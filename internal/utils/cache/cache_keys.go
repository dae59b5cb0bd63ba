package cache

import "fmt"

type EntityType string

const (
	EntityWallet EntityType = "wallet"
)

type KeyType string

const (
	KeyAddress KeyType = "address"
	KeyVersion KeyType = "version"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// WalletKey is the cache key of a single wallet
func WalletKey(address string) string {
	return GenerateKey(EntityWallet, KeyAddress, address)
}

// WalletVersionKey holds the invalidation counter of a wallet entry
func WalletVersionKey(address string) string {
	return GenerateKey(EntityWallet, KeyVersion, address)
}
