package wallet

import (
	"context"
	"fmt"
	"time"

	domainerr "kolo/internal/errors"
	"kolo/internal/models"
	"kolo/internal/repositories"
	"kolo/internal/services/fee"
	"kolo/internal/utils"
	"kolo/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// conflictRetries bounds the automatic retries on optimistic-lock
// conflicts before surfacing a conflict to the caller.
const conflictRetries = 3

type service struct {
	repo    repositories.WalletRepository
	cache   CacheOperator
	pins    PINVerifier
	fees    *fee.Calculator
	methods ProviderLookup
	log     *logrus.Entry
}

// NewService creates the wallet ledger service.
func NewService(
	repo repositories.WalletRepository,
	cache CacheOperator,
	pins PINVerifier,
	fees *fee.Calculator,
	methods ProviderLookup,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if pins == nil {
		panic("pin verifier is required")
	}
	if fees == nil {
		panic("fee calculator is required")
	}
	if methods == nil {
		panic("provider lookup is required")
	}

	return &service{
		repo:    repo,
		cache:   cache,
		pins:    pins,
		fees:    fees,
		methods: methods,
		log:     logrus.WithField("component", "wallet"),
	}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if cached, err := s.cache.GetWallet(ctx, userID); err == nil {
		return cached, nil
	}

	wallet, err := s.getOrCreateWallet(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetWallet(ctx, wallet); err != nil {
		s.log.WithError(err).Warn("failed to cache wallet")
	}
	return wallet, nil
}

func (s *service) RequestDeposit(ctx context.Context, req DepositRequest) (*models.Transaction, error) {
	if err := validation.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Amount < s.fees.Policy().MinDeposit {
		return nil, domainerr.ErrAmountBelowMinimum
	}
	if err := validation.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return nil, err
	}
	method, err := s.resolveProvider(ctx, req.Provider)
	if err != nil {
		return nil, err
	}

	// Lazy-init the wallet so the owner record exists before validation.
	if _, err := s.getOrCreateWallet(ctx, s.repo, req.UserID); err != nil {
		return nil, err
	}

	txn, err := s.newTransaction(models.TransactionTypeDeposit, req.UserID, req.Amount, s.fees.DepositFee(req.Amount))
	if err != nil {
		return nil, err
	}
	txn.Provider = method.Code
	txn.PhoneNumber = req.PhoneNumber
	txn.ExternalTransID = req.ProofCode
	txn.Metadata = models.JSON{
		"provider_name":   method.Name,
		"receive_account": method.ReceiveAccount,
	}

	// Deposits never touch the balance here: the money has not arrived
	// until an admin confirms it on the platform account.
	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"reference": txn.Reference,
		"amount":    req.Amount,
		"fee":       txn.Fee,
	}).Info("deposit requested")
	return txn, nil
}

func (s *service) RequestWithdrawal(ctx context.Context, req WithdrawalRequest) (*models.Transaction, error) {
	policy := s.fees.Policy()
	if err := validation.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.Amount < policy.MinWithdrawal {
		return nil, domainerr.ErrAmountBelowMinimum
	}
	if req.Amount > policy.MaxWithdrawalPerDay {
		return nil, domainerr.ErrAmountAboveMaximum
	}
	if err := validation.ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return nil, err
	}
	method, err := s.resolveProvider(ctx, req.Provider)
	if err != nil {
		return nil, err
	}

	if err := s.pins.Verify(ctx, req.UserID, req.PIN); err != nil {
		return nil, err
	}

	if err := s.checkDailyWithdrawalCap(ctx, req.UserID, req.Amount, policy.MaxWithdrawalPerDay); err != nil {
		return nil, err
	}

	withdrawalFee := s.fees.WithdrawalFee(req.Amount)
	txn, err := s.newTransaction(models.TransactionTypeWithdrawal, req.UserID, req.Amount, withdrawalFee)
	if err != nil {
		return nil, err
	}
	txn.Provider = method.Code
	txn.PhoneNumber = req.PhoneNumber
	txn.Metadata = models.JSON{"provider_name": method.Name}

	// Debit-on-request: once asked for, the payout funds are earmarked
	// and unavailable to any other operation. Only rejection reverses it.
	err = s.withConflictRetry(func() error {
		return s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
			wallet, werr := s.getOrCreateWallet(ctx, tx, req.UserID)
			if werr != nil {
				return werr
			}
			if wallet.Balance < txn.TotalAmount {
				return domainerr.ErrInsufficientFunds
			}
			if uerr := tx.UpdateWalletBalances(ctx, wallet,
				wallet.Balance-txn.TotalAmount,
				wallet.PendingBalance+txn.TotalAmount); uerr != nil {
				return uerr
			}
			return tx.CreateTransaction(ctx, txn)
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	s.log.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"reference": txn.Reference,
		"amount":    req.Amount,
		"fee":       withdrawalFee,
	}).Info("withdrawal requested, funds earmarked")
	return txn, nil
}

func (s *service) Pay(ctx context.Context, req PaymentRequest) (*models.Transaction, error) {
	if err := validation.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}

	txn, err := s.newTransaction(models.TransactionTypePayment, req.UserID, req.Amount, 0)
	if err != nil {
		return nil, err
	}
	txn.Status = models.TransactionStatusCompleted
	txn.Description = req.Description

	err = s.withConflictRetry(func() error {
		return s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
			wallet, werr := s.getOrCreateWallet(ctx, tx, req.UserID)
			if werr != nil {
				return werr
			}
			if wallet.Balance < txn.TotalAmount {
				return domainerr.ErrInsufficientFunds
			}
			if uerr := tx.UpdateWalletBalances(ctx, wallet,
				wallet.Balance-txn.TotalAmount, wallet.PendingBalance); uerr != nil {
				return uerr
			}
			return tx.CreateTransaction(ctx, txn)
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	s.log.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"reference": txn.Reference,
		"amount":    req.Amount,
	}).Info("payment completed")
	return txn, nil
}

func (s *service) ListPending(ctx context.Context, txType string) ([]models.Transaction, error) {
	txs, _, err := s.repo.ListTransactions(ctx, repositories.TransactionFilter{
		Status: models.TransactionStatusPending,
		Type:   txType,
	})
	return txs, err
}

func (s *service) ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Helpers

func (s *service) newTransaction(txType string, userID uint, amount, txFee int64) (*models.Transaction, error) {
	reference, err := utils.GenerateReference(txType)
	if err != nil {
		return nil, err
	}
	return &models.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          txType,
		Status:        models.TransactionStatusPending,
		Amount:        amount,
		Fee:           txFee,
		TotalAmount:   amount + txFee,
		Reference:     reference,
	}, nil
}

func (s *service) resolveProvider(ctx context.Context, code string) (*models.PaymentMethod, error) {
	method, err := s.methods.GetByCode(ctx, code)
	if err != nil {
		return nil, domainerr.ErrProviderNotFound
	}
	if !method.Enabled {
		return nil, domainerr.ErrProviderNotFound
	}
	return method, nil
}

func (s *service) checkDailyWithdrawalCap(ctx context.Context, userID uint, amount, limit int64) error {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	total, err := s.repo.SumWithdrawalsBetween(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return fmt.Errorf("failed to check daily withdrawal cap: %w", err)
	}
	if total+amount > limit {
		return domainerr.ErrDailyLimitExceeded
	}
	return nil
}

func (s *service) getOrCreateWallet(ctx context.Context, repo repositories.WalletRepository, userID uint) (*models.Wallet, error) {
	wallet, err := repo.GetWalletByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if err != repositories.ErrWalletNotFound {
		return nil, err
	}

	wallet = &models.Wallet{UserID: userID}
	if cerr := repo.CreateWallet(ctx, wallet); cerr != nil {
		// Lost the creation race, re-read.
		return repo.GetWalletByUserID(ctx, userID)
	}
	return wallet, nil
}

func (s *service) withConflictRetry(fn func() error) error {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if err == repositories.ErrVersionConflict {
			s.log.WithField("attempt", attempt+1).Warn("wallet version conflict, retrying")
			continue
		}
		return err
	}
	return domainerr.ErrPersistenceConflict
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to invalidate wallet cache")
	}
}
