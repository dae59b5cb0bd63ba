package models

import (
	"time"
)

// Wallet holds a satoshi balance owned by a user's API key.
type Wallet struct {
	Address   string    `gorm:"primaryKey;size:64" json:"address"`
	OwnerKey  string    `gorm:"index;not null;size:64" json:"owner_key"`
	Balance   int64     `gorm:"not null;check:balance >= 0" json:"balance"`
	CreatedAt time.Time `gorm:"index" json:"-"`
	UpdatedAt time.Time `json:"-"`
	// Seq is assigned on insert and orders wallets by creation.
	Seq       int64     `gorm:"autoIncrement;uniqueIndex;not null" json:"-"`
}

// OwnedBy reports whether apiKey owns the wallet.
func (w *Wallet) OwnedBy(apiKey string) bool {
	return w.OwnerKey == apiKey
}
