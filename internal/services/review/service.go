// Package review implements the admin validation/rejection workflow over
// pending transactions. The only permitted transitions are
// pending -> completed (validate) and pending -> failed (reject); anything
// else returns an invalid-state error. The status flip and the paired
// balance mutation always commit in one database transaction.
package review

import (
	"context"
	"time"

	domainerr "kolo/internal/errors"
	"kolo/internal/models"
	"kolo/internal/repositories"
	"kolo/internal/validation"

	"github.com/sirupsen/logrus"
)

// conflictRetries bounds retries on optimistic-lock conflicts; conflicts
// here mean two admins acted on the same wallet at once.
const conflictRetries = 3

// CacheInvalidator drops the owner's cached wallet after settlement.
type CacheInvalidator interface {
	InvalidateWallet(ctx context.Context, userID uint) error
}

// Service settles pending transactions.
type Service interface {
	// Validate confirms a pending transaction actually happened on the
	// mobile-money side. Deposits credit the principal; withdrawals were
	// debited at request time so only the earmark is cleared.
	Validate(ctx context.Context, txID uint, adminID uint, notes string) (*models.Transaction, error)

	// Reject declares a pending transaction invalid with a mandatory
	// reason. Rejected withdrawals restore the full debited amount
	// (principal plus fee).
	Reject(ctx context.Context, txID uint, adminID uint, reason string) (*models.Transaction, error)
}

type service struct {
	repo  repositories.WalletRepository
	cache CacheInvalidator
	log   *logrus.Entry
}

func NewService(repo repositories.WalletRepository, cache CacheInvalidator) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{
		repo:  repo,
		cache: cache,
		log:   logrus.WithField("component", "review"),
	}
}

func (s *service) Validate(ctx context.Context, txID uint, adminID uint, notes string) (*models.Transaction, error) {
	return s.settle(ctx, txID, func(txn *models.Transaction) (map[string]interface{}, balanceDelta) {
		now := time.Now()
		updates := map[string]interface{}{
			"status":       models.TransactionStatusCompleted,
			"validated_by": adminID,
			"validated_at": now,
			"notes":        notes,
		}
		switch txn.Type {
		case models.TransactionTypeDeposit:
			// The fee was paid to the provider, not to the platform;
			// only the principal lands on the wallet.
			return updates, balanceDelta{balance: txn.Amount}
		case models.TransactionTypeWithdrawal:
			// Balance was debited at request time; just clear the earmark.
			return updates, balanceDelta{pending: -txn.TotalAmount}
		default:
			return updates, balanceDelta{}
		}
	})
}

func (s *service) Reject(ctx context.Context, txID uint, adminID uint, reason string) (*models.Transaction, error) {
	if err := validation.ValidateRejectionReason(reason); err != nil {
		return nil, err
	}

	return s.settle(ctx, txID, func(txn *models.Transaction) (map[string]interface{}, balanceDelta) {
		now := time.Now()
		updates := map[string]interface{}{
			"status":           models.TransactionStatusFailed,
			"validated_by":     adminID,
			"validated_at":     now,
			"rejection_reason": reason,
		}
		if txn.Type == models.TransactionTypeWithdrawal {
			// Full restoration: the user gets back exactly what was
			// debited, fee included.
			return updates, balanceDelta{balance: txn.TotalAmount, pending: -txn.TotalAmount}
		}
		return updates, balanceDelta{}
	})
}

// balanceDelta is the wallet-side effect of a settlement.
type balanceDelta struct {
	balance int64
	pending int64
}

func (d balanceDelta) isZero() bool {
	return d.balance == 0 && d.pending == 0
}

// settle runs the shared settlement machinery: load the transaction, check
// it is still pending, apply the wallet delta and flip the status, all in
// one database transaction, retrying on version conflicts.
func (s *service) settle(ctx context.Context, txID uint, decide func(*models.Transaction) (map[string]interface{}, balanceDelta)) (*models.Transaction, error) {
	var ownerID uint

	for attempt := 0; attempt < conflictRetries; attempt++ {
		err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
			txn, terr := tx.GetTransactionByID(ctx, txID)
			if terr != nil {
				if terr == repositories.ErrTransactionNotFound {
					return domainerr.ErrTransactionNotFound
				}
				return terr
			}
			if !txn.IsPending() {
				return domainerr.ErrInvalidState
			}
			ownerID = txn.UserID

			updates, delta := decide(txn)

			if !delta.isZero() {
				wallet, werr := tx.GetWalletByUserID(ctx, txn.UserID)
				if werr != nil {
					if werr == repositories.ErrWalletNotFound {
						return domainerr.ErrWalletNotFound
					}
					return werr
				}
				newBalance := wallet.Balance + delta.balance
				newPending := wallet.PendingBalance + delta.pending
				if newBalance < 0 || newPending < 0 {
					// A settled ledger can never drive either figure
					// negative; treat it as a settled-elsewhere race.
					return domainerr.ErrInvalidState
				}
				if uerr := tx.UpdateWalletBalances(ctx, wallet, newBalance, newPending); uerr != nil {
					return uerr
				}
			}

			if serr := tx.SettleTransaction(ctx, txID, updates); serr != nil {
				if serr == repositories.ErrNotPending {
					return domainerr.ErrInvalidState
				}
				return serr
			}
			return nil
		})

		if err == repositories.ErrVersionConflict {
			s.log.WithFields(logrus.Fields{
				"transaction_id": txID,
				"attempt":        attempt + 1,
			}).Warn("settlement conflict, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}

		if cerr := s.cache.InvalidateWallet(ctx, ownerID); cerr != nil {
			s.log.WithError(cerr).WithField("user_id", ownerID).Warn("failed to invalidate wallet cache")
		}

		settled, gerr := s.repo.GetTransactionByID(ctx, txID)
		if gerr != nil {
			return nil, gerr
		}
		s.log.WithFields(logrus.Fields{
			"transaction_id": txID,
			"reference":      settled.Reference,
			"status":         settled.Status,
		}).Info("transaction settled")
		return settled, nil
	}

	return nil, domainerr.ErrPersistenceConflict
}
