package repositories

import (
	"context"
	"errors"
	"time"

	"kolo/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
	ErrVersionConflict     = errors.New("stale wallet version")
	ErrNotPending          = errors.New("transaction is not pending")
)

// TransactionFilter narrows ListTransactions. Zero values mean "any".
type TransactionFilter struct {
	UserID uint
	Status string
	Type   string
	Limit  int
	Offset int
}

// WalletRepository defines the persistence surface of the wallet ledger.
// Balance-affecting writes are conditional: wallet updates check the
// optimistic version counter and settlement checks the pending status, so
// concurrent writers surface as ErrVersionConflict / ErrNotPending instead
// of lost updates.
type WalletRepository interface {
	// Wallet operations
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	GetWalletByUserID(ctx context.Context, userID uint) (*models.Wallet, error)
	// UpdateWalletBalances writes the given balances iff wallet.Version is
	// still current, then bumps the version on the passed struct.
	UpdateWalletBalances(ctx context.Context, wallet *models.Wallet, balance, pendingBalance int64) error
	// SetWalletPINHash replaces the PIN hash under the same version check.
	SetWalletPINHash(ctx context.Context, wallet *models.Wallet, pinHash string) error

	// Transaction operations
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error)
	GetTransactionByReference(ctx context.Context, reference string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error)
	// SettleTransaction applies the column updates iff the row is still
	// pending; returns ErrNotPending otherwise.
	SettleTransaction(ctx context.Context, id uint, updates map[string]interface{}) error
	// SumWithdrawalsBetween totals the principal of non-failed withdrawals
	// created in [start, end), for the daily cap.
	SumWithdrawalsBetween(ctx context.Context, userID uint, start, end time.Time) (int64, error)

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction. This is the atomicity primitive for every
	// paired (status update, balance update).
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
