package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypePayment    = "payment"
)

// Transaction statuses. Transitions are monotonic:
// pending -> processing -> completed | failed. A settled transaction
// never returns to pending.
const (
	TransactionStatusPending    = "pending"
	TransactionStatusProcessing = "processing"
	TransactionStatusCompleted  = "completed"
	TransactionStatusFailed     = "failed"
)

// Transaction is one deposit, withdrawal or payment request and its
// lifecycle. Fee is computed at creation time and never recomputed;
// TotalAmount = Amount + Fee.
type Transaction struct {
	ID              uint   `gorm:"primarykey"`
	TransactionID   string `gorm:"uniqueIndex;not null"` // opaque UUID
	UserID          uint   `gorm:"index;not null"`
	Type            string `gorm:"not null"`
	Status          string `gorm:"not null;default:'pending'"`
	Amount          int64  `gorm:"not null"`
	Fee             int64  `gorm:"not null;default:0"`
	TotalAmount     int64  `gorm:"not null"`
	Provider        string // mobile-money channel code (mtn, orange, moov, wave)
	PhoneNumber     string
	Reference       string `gorm:"uniqueIndex;not null"` // human-typeable reconciliation code
	ExternalTransID string // proof code entered by the user after paying on the provider app
	Description     string
	RejectionReason string
	Notes           string
	ValidatedBy     *uint
	ValidatedAt     *time.Time
	Metadata        JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending reports whether the transaction can still be validated or rejected.
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// IsSettled reports whether the transaction reached a terminal status.
func (t *Transaction) IsSettled() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}
