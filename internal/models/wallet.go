package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's available FCFA balance. PendingBalance tracks funds
// earmarked by in-flight withdrawals. Version is bumped on every balance
// mutation; all writes are conditional on it.
type Wallet struct {
	ID             uint   `gorm:"primarykey"`
	UserID         uint   `gorm:"uniqueIndex;not null"`
	Balance        int64  `gorm:"not null;default:0"`
	PendingBalance int64  `gorm:"not null;default:0"`
	PINHash        string `gorm:"default:''" json:"-"`
	Version        int64  `gorm:"not null;default:0" json:"-"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Wallets always start empty regardless of what the caller set.
	w.Balance = 0
	w.PendingBalance = 0
	return nil
}

// HasPIN reports whether a withdrawal PIN has been configured.
func (w *Wallet) HasPIN() bool {
	return w.PINHash != ""
}
