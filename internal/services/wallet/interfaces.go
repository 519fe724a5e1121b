package wallet

import (
	"context"

	"kolo/internal/models"
	"kolo/internal/repositories"
)

// Service is the wallet ledger surface.
type Service interface {
	// GetWallet returns the owner's wallet, creating it with a zero
	// balance on first access.
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)

	// RequestDeposit creates a pending deposit. No balance mutation
	// happens until an admin validates it.
	RequestDeposit(ctx context.Context, req DepositRequest) (*models.Transaction, error)

	// RequestWithdrawal verifies the PIN, checks bounds and funds, debits
	// amount plus fee and creates the pending withdrawal atomically.
	RequestWithdrawal(ctx context.Context, req WithdrawalRequest) (*models.Transaction, error)

	// Pay debits the balance and records a completed payment in one step.
	Pay(ctx context.Context, req PaymentRequest) (*models.Transaction, error)

	// ListPending is the admin work queue, newest first. txType narrows
	// by type when non-empty.
	ListPending(ctx context.Context, txType string) ([]models.Transaction, error)

	// ListTransactions is the general history/query surface.
	ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, int64, error)
}
