package wallet

import (
	"context"

	"kolo/internal/models"
)

// DepositRequest asks the platform to credit the wallet once the user's
// mobile-money transfer is confirmed by an admin.
type DepositRequest struct {
	UserID      uint
	Amount      int64
	Provider    string
	PhoneNumber string
	ProofCode   string // transaction code from the provider app, manual proof of payment
}

// WithdrawalRequest asks for a payout to the user's mobile-money account.
// The PIN authorizes the request; amount plus fee is debited immediately.
type WithdrawalRequest struct {
	UserID      uint
	Amount      int64
	Provider    string
	PhoneNumber string
	PIN         string
}

// PaymentRequest is a single-step marketplace payment debited directly
// from the available balance.
type PaymentRequest struct {
	UserID      uint
	Amount      int64
	Description string
}

// CacheOperator is the read-through wallet cache consumed by the ledger.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}

// PINVerifier gates withdrawal initiation.
type PINVerifier interface {
	Verify(ctx context.Context, userID uint, candidate string) error
}

// ProviderLookup resolves a mobile-money channel code against the
// configured payment methods.
type ProviderLookup interface {
	GetByCode(ctx context.Context, code string) (*models.PaymentMethod, error)
}
