package models

import "time"

// User is identified solely by its opaque API key.
type User struct {
	APIKey    string    `gorm:"column:api_key;primaryKey;size:64" json:"api_key"`
	CreatedAt time.Time `json:"-"`
}
