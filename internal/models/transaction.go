package models

import (
	"time"
)

// Transaction is an immutable record of a completed transfer. ID is assigned by
// the store on append and only serves as identity for de-duplication.
type Transaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Source      string    `gorm:"index;not null;size:64" json:"source"`
	Destination string    `gorm:"index;not null;size:64" json:"destination"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Fee         int64     `gorm:"not null" json:"fee"`
	CreatedAt   time.Time `json:"-"`
}

// Touches reports whether the transaction moves funds in or out of address.
func (t *Transaction) Touches(address string) bool {
	return t.Source == address || t.Destination == address
}
