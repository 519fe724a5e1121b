package models

import (
	"time"
)

// PaymentMethod is a configured mobile-money channel (MTN, Orange, Moov,
// Wave). ReceiveAccount is the platform's own number on that channel, shown
// to depositors. The wallet core only reads these records.
type PaymentMethod struct {
	ID             uint   `gorm:"primarykey"`
	Code           string `gorm:"uniqueIndex;not null"` // e.g. "mtn"
	Name           string `gorm:"not null"`             // e.g. "MTN Mobile Money"
	ReceiveAccount string `gorm:"not null"`
	Enabled        bool   `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
