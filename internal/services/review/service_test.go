package review

import (
	"context"
	"testing"
	"time"

	domainerr "kolo/internal/errors"
	"kolo/internal/models"
	"kolo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory WalletRepository. ExecuteInTransaction snapshots
// state and rolls back on error; conflictsLeft injects optimistic-lock
// conflicts to exercise the retry loop.
type memRepo struct {
	wallets       map[uint]*models.Wallet
	transactions  map[uint]*models.Transaction
	nextWalletID  uint
	nextTxID      uint
	conflictsLeft int
}

func newMemRepo() *memRepo {
	return &memRepo{
		wallets:      make(map[uint]*models.Wallet),
		transactions: make(map[uint]*models.Transaction),
	}
}

func (r *memRepo) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	for _, w := range r.wallets {
		if w.UserID == wallet.UserID {
			return repositories.ErrDuplicateWallet
		}
	}
	r.nextWalletID++
	wallet.ID = r.nextWalletID
	stored := *wallet
	r.wallets[wallet.ID] = &stored
	return nil
}

func (r *memRepo) GetWalletByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	for _, w := range r.wallets {
		if w.UserID == userID {
			copied := *w
			return &copied, nil
		}
	}
	return nil, repositories.ErrWalletNotFound
}

func (r *memRepo) UpdateWalletBalances(ctx context.Context, wallet *models.Wallet, balance, pendingBalance int64) error {
	stored, ok := r.wallets[wallet.ID]
	if !ok || stored.Version != wallet.Version {
		return repositories.ErrVersionConflict
	}
	stored.Balance = balance
	stored.PendingBalance = pendingBalance
	stored.Version++
	wallet.Balance = balance
	wallet.PendingBalance = pendingBalance
	wallet.Version++
	return nil
}

func (r *memRepo) SetWalletPINHash(ctx context.Context, wallet *models.Wallet, pinHash string) error {
	stored, ok := r.wallets[wallet.ID]
	if !ok || stored.Version != wallet.Version {
		return repositories.ErrVersionConflict
	}
	stored.PINHash = pinHash
	stored.Version++
	wallet.Version++
	return nil
}

func (r *memRepo) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	r.nextTxID++
	tx.ID = r.nextTxID
	stored := *tx
	r.transactions[tx.ID] = &stored
	return nil
}

func (r *memRepo) GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *memRepo) GetTransactionByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.Reference == reference {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (r *memRepo) ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	var out []models.Transaction
	for _, tx := range r.transactions {
		if filter.UserID != 0 && tx.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		out = append(out, *tx)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) SettleTransaction(ctx context.Context, id uint, updates map[string]interface{}) error {
	stored, ok := r.transactions[id]
	if !ok || stored.Status != models.TransactionStatusPending {
		return repositories.ErrNotPending
	}
	if v, ok := updates["status"]; ok {
		stored.Status = v.(string)
	}
	if v, ok := updates["validated_by"]; ok {
		adminID := v.(uint)
		stored.ValidatedBy = &adminID
	}
	if v, ok := updates["validated_at"]; ok {
		at := v.(time.Time)
		stored.ValidatedAt = &at
	}
	if v, ok := updates["notes"]; ok {
		stored.Notes = v.(string)
	}
	if v, ok := updates["rejection_reason"]; ok {
		stored.RejectionReason = v.(string)
	}
	return nil
}

func (r *memRepo) SumWithdrawalsBetween(ctx context.Context, userID uint, start, end time.Time) (int64, error) {
	var total int64
	for _, tx := range r.transactions {
		if tx.UserID == userID && tx.Type == models.TransactionTypeWithdrawal && tx.Status != models.TransactionStatusFailed {
			total += tx.Amount
		}
	}
	return total, nil
}

func (r *memRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return repositories.ErrVersionConflict
	}

	snapWallets := make(map[uint]*models.Wallet, len(r.wallets))
	for id, w := range r.wallets {
		copied := *w
		snapWallets[id] = &copied
	}
	snapTxs := make(map[uint]*models.Transaction, len(r.transactions))
	for id, tx := range r.transactions {
		copied := *tx
		snapTxs[id] = &copied
	}

	if err := fn(r); err != nil {
		r.wallets = snapWallets
		r.transactions = snapTxs
		return err
	}
	return nil
}

func (r *memRepo) walletByUser(userID uint) *models.Wallet {
	for _, w := range r.wallets {
		if w.UserID == userID {
			return w
		}
	}
	return nil
}

type noopCache struct{}

func (noopCache) InvalidateWallet(ctx context.Context, userID uint) error { return nil }

// seedWallet stores a wallet with the given balances.
func seedWallet(t *testing.T, repo *memRepo, userID uint, balance, pending int64) {
	t.Helper()
	w := &models.Wallet{UserID: userID, Balance: balance, PendingBalance: pending}
	require.NoError(t, repo.CreateWallet(context.Background(), w))
}

// seedPending stores a pending transaction and returns its ID.
func seedPending(t *testing.T, repo *memRepo, txn models.Transaction) uint {
	t.Helper()
	txn.Status = models.TransactionStatusPending
	if txn.TotalAmount == 0 {
		txn.TotalAmount = txn.Amount + txn.Fee
	}
	require.NoError(t, repo.CreateTransaction(context.Background(), &txn))
	return txn.ID
}

const adminID uint = 99

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("deposit credits the principal only", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 0, 0)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeDeposit,
			Amount: 2_000, Fee: 0, Provider: "mtn", ExternalTransID: "MP1234",
		})

		settled, err := svc.Validate(ctx, txID, adminID, "matched on provider statement")
		require.NoError(t, err)

		assert.Equal(t, models.TransactionStatusCompleted, settled.Status)
		require.NotNil(t, settled.ValidatedBy)
		assert.Equal(t, adminID, *settled.ValidatedBy)
		assert.NotNil(t, settled.ValidatedAt)
		assert.Equal(t, "matched on provider statement", settled.Notes)
		assert.Equal(t, int64(2_000), repo.walletByUser(1).Balance)
	})

	t.Run("deposit with a fee still credits only the amount", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 0, 0)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeDeposit, Amount: 200_000, Fee: 3_000,
		})

		_, err := svc.Validate(ctx, txID, adminID, "")
		require.NoError(t, err)
		assert.Equal(t, int64(200_000), repo.walletByUser(1).Balance)
	})

	t.Run("withdrawal clears the earmark without moving the balance", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 4_900, 5_100)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeWithdrawal, Amount: 5_000, Fee: 100,
		})

		settled, err := svc.Validate(ctx, txID, adminID, "payout sent")
		require.NoError(t, err)

		assert.Equal(t, models.TransactionStatusCompleted, settled.Status)
		stored := repo.walletByUser(1)
		assert.Equal(t, int64(4_900), stored.Balance)
		assert.Equal(t, int64(0), stored.PendingBalance)
	})

	t.Run("second settlement attempt is rejected without a double credit", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 0, 0)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeDeposit, Amount: 2_000,
		})

		_, err := svc.Validate(ctx, txID, adminID, "")
		require.NoError(t, err)

		_, err = svc.Validate(ctx, txID, adminID, "")
		assert.ErrorIs(t, err, domainerr.ErrInvalidState)
		_, err = svc.Reject(ctx, txID, adminID, "changed my mind")
		assert.ErrorIs(t, err, domainerr.ErrInvalidState)

		assert.Equal(t, int64(2_000), repo.walletByUser(1).Balance)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})

		_, err := svc.Validate(ctx, 404, adminID, "")
		assert.ErrorIs(t, err, domainerr.ErrTransactionNotFound)
	})

	t.Run("retries through version conflicts", func(t *testing.T) {
		repo := newMemRepo()
		repo.conflictsLeft = 2
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 0, 0)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeDeposit, Amount: 2_000,
		})

		_, err := svc.Validate(ctx, txID, adminID, "")
		require.NoError(t, err)
		assert.Equal(t, int64(2_000), repo.walletByUser(1).Balance)
	})

	t.Run("persistent conflicts surface once retries are exhausted", func(t *testing.T) {
		repo := newMemRepo()
		repo.conflictsLeft = 10
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 0, 0)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeDeposit, Amount: 2_000,
		})

		_, err := svc.Validate(ctx, txID, adminID, "")
		assert.ErrorIs(t, err, domainerr.ErrPersistenceConflict)
		assert.Equal(t, int64(0), repo.walletByUser(1).Balance)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("withdrawal restores the full debited amount", func(t *testing.T) {
		// Balance 10,000; withdraw 5,000 with a 100 fee left 4,900
		// available and 5,100 earmarked. Rejection restores 10,000.
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 4_900, 5_100)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeWithdrawal, Amount: 5_000, Fee: 100,
		})

		settled, err := svc.Reject(ctx, txID, adminID, "wrong number")
		require.NoError(t, err)

		assert.Equal(t, models.TransactionStatusFailed, settled.Status)
		assert.Equal(t, "wrong number", settled.RejectionReason)
		require.NotNil(t, settled.ValidatedBy)
		assert.Equal(t, adminID, *settled.ValidatedBy)

		stored := repo.walletByUser(1)
		assert.Equal(t, int64(10_000), stored.Balance)
		assert.Equal(t, int64(0), stored.PendingBalance)
	})

	t.Run("rejected deposit leaves the wallet untouched", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 7_000, 0)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeDeposit, Amount: 2_000,
		})

		settled, err := svc.Reject(ctx, txID, adminID, "no matching transfer")
		require.NoError(t, err)

		assert.Equal(t, models.TransactionStatusFailed, settled.Status)
		assert.Equal(t, int64(7_000), repo.walletByUser(1).Balance)
	})

	t.Run("a reason is mandatory", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})
		seedWallet(t, repo, 1, 4_900, 5_100)
		txID := seedPending(t, repo, models.Transaction{
			UserID: 1, Type: models.TransactionTypeWithdrawal, Amount: 5_000, Fee: 100,
		})

		_, err := svc.Reject(ctx, txID, adminID, "   ")
		assert.ErrorIs(t, err, domainerr.ErrRejectionReasonRequired)
		assert.Equal(t, int64(4_900), repo.walletByUser(1).Balance)

		got, gerr := repo.GetTransactionByID(ctx, txID)
		require.NoError(t, gerr)
		assert.Equal(t, models.TransactionStatusPending, got.Status)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, noopCache{})

		_, err := svc.Reject(ctx, 404, adminID, "does not exist")
		assert.ErrorIs(t, err, domainerr.ErrTransactionNotFound)
	})
}

// A request/settle cycle conserves money: whatever leaves the available
// balance either lands in the earmark or comes back on rejection.
func TestSettlementConservation(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, noopCache{})
	seedWallet(t, repo, 1, 20_000, 10_200) // two earmarked withdrawals of 5,100

	first := seedPending(t, repo, models.Transaction{
		UserID: 1, Type: models.TransactionTypeWithdrawal, Amount: 5_000, Fee: 100,
	})
	second := seedPending(t, repo, models.Transaction{
		UserID: 1, Type: models.TransactionTypeWithdrawal, Amount: 5_000, Fee: 100,
	})

	_, err := svc.Validate(ctx, first, adminID, "paid")
	require.NoError(t, err)
	_, err = svc.Reject(ctx, second, adminID, "account closed")
	require.NoError(t, err)

	stored := repo.walletByUser(1)
	assert.Equal(t, int64(25_100), stored.Balance)
	assert.Equal(t, int64(0), stored.PendingBalance)
}
