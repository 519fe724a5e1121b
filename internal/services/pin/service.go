// Package pin implements the withdrawal PIN guard: a 4-6 digit numeric
// shared secret stored as a bcrypt hash, with a redis-backed lockout after
// repeated failures.
package pin

import (
	"context"
	"fmt"
	"time"

	domainerr "kolo/internal/errors"
	"kolo/internal/models"
	"kolo/internal/repositories"
	"kolo/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Lockout policy: MaxFailures consecutive misses inside Window lock
// verification for LockDuration.
const (
	MaxFailures  = 3
	Window       = 30 * time.Minute
	LockDuration = 30 * time.Minute
)

// AttemptStore tracks consecutive failures per owner.
type AttemptStore interface {
	IsLocked(ctx context.Context, userID uint) (bool, error)
	RecordFailure(ctx context.Context, userID uint, window time.Duration) (int64, error)
	Lock(ctx context.Context, userID uint, duration time.Duration) error
	Reset(ctx context.Context, userID uint) error
}

// Service is the PIN guard surface consumed by the wallet ledger.
type Service interface {
	Set(ctx context.Context, userID uint, newPIN string) error
	Verify(ctx context.Context, userID uint, candidate string) error
}

type service struct {
	repo     repositories.WalletRepository
	attempts AttemptStore
}

func NewService(repo repositories.WalletRepository, attempts AttemptStore) Service {
	if repo == nil {
		panic("repo is required")
	}
	if attempts == nil {
		panic("attempt store is required")
	}
	return &service{repo: repo, attempts: attempts}
}

func (s *service) Set(ctx context.Context, userID uint, newPIN string) error {
	if err := validation.ValidatePIN(newPIN); err != nil {
		return err
	}

	wallet, err := s.getOrCreateWallet(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}

	if err := s.repo.SetWalletPINHash(ctx, wallet, string(hash)); err != nil {
		if err == repositories.ErrVersionConflict {
			return domainerr.ErrPersistenceConflict
		}
		return err
	}
	return nil
}

func (s *service) Verify(ctx context.Context, userID uint, candidate string) error {
	locked, err := s.attempts.IsLocked(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check pin lockout: %w", err)
	}
	if locked {
		return domainerr.ErrPINLocked
	}

	wallet, err := s.repo.GetWalletByUserID(ctx, userID)
	if err != nil {
		if err == repositories.ErrWalletNotFound {
			return domainerr.ErrPINNotSet
		}
		return err
	}
	if !wallet.HasPIN() {
		return domainerr.ErrPINNotSet
	}

	if bcrypt.CompareHashAndPassword([]byte(wallet.PINHash), []byte(candidate)) != nil {
		count, ferr := s.attempts.RecordFailure(ctx, userID, Window)
		if ferr != nil {
			return fmt.Errorf("failed to record pin failure: %w", ferr)
		}
		if count >= MaxFailures {
			if lerr := s.attempts.Lock(ctx, userID, LockDuration); lerr != nil {
				return fmt.Errorf("failed to lock pin: %w", lerr)
			}
			return domainerr.ErrPINLocked
		}
		return domainerr.ErrPINMismatch
	}

	if err := s.attempts.Reset(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset pin attempts: %w", err)
	}
	return nil
}

func (s *service) getOrCreateWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet, err := s.repo.GetWalletByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if err != repositories.ErrWalletNotFound {
		return nil, err
	}

	wallet = &models.Wallet{UserID: userID}
	if cerr := s.repo.CreateWallet(ctx, wallet); cerr != nil {
		// Lost the creation race, re-read.
		return s.repo.GetWalletByUserID(ctx, userID)
	}
	return wallet, nil
}
