package pin

import (
	"context"
	"testing"
	"time"

	domainerr "kolo/internal/errors"
	"kolo/internal/models"
	"kolo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type stubRepo struct {
	repositories.WalletRepository
	wallet    *models.Wallet
	walletErr error
	setHash   func(hash string)
}

func (s *stubRepo) GetWalletByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.walletErr != nil {
		return nil, s.walletErr
	}
	return s.wallet, nil
}

func (s *stubRepo) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	s.wallet = wallet
	s.walletErr = nil
	return nil
}

func (s *stubRepo) SetWalletPINHash(ctx context.Context, wallet *models.Wallet, pinHash string) error {
	wallet.PINHash = pinHash
	if s.setHash != nil {
		s.setHash(pinHash)
	}
	return nil
}

type mockAttempts struct {
	mock.Mock
}

func (m *mockAttempts) IsLocked(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAttempts) RecordFailure(ctx context.Context, userID uint, window time.Duration) (int64, error) {
	args := m.Called(ctx, userID, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAttempts) Lock(ctx context.Context, userID uint, duration time.Duration) error {
	args := m.Called(ctx, userID, duration)
	return args.Error(0)
}

func (m *mockAttempts) Reset(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func hashPIN(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestSet(t *testing.T) {
	t.Run("stores a bcrypt hash, never the raw pin", func(t *testing.T) {
		var stored string
		repo := &stubRepo{
			wallet:  &models.Wallet{ID: 1, UserID: 1},
			setHash: func(h string) { stored = h },
		}
		svc := NewService(repo, new(mockAttempts))

		err := svc.Set(context.Background(), 1, "4321")
		assert.NoError(t, err)
		assert.NotEmpty(t, stored)
		assert.NotEqual(t, "4321", stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("4321")))
	})

	t.Run("rejects malformed pins", func(t *testing.T) {
		repo := &stubRepo{wallet: &models.Wallet{ID: 1, UserID: 1}}
		svc := NewService(repo, new(mockAttempts))

		for _, bad := range []string{"12", "1234567", "abcd", ""} {
			assert.ErrorIs(t, svc.Set(context.Background(), 1, bad), domainerr.ErrInvalidPIN)
		}
	})

	t.Run("lazily creates a missing wallet", func(t *testing.T) {
		repo := &stubRepo{walletErr: repositories.ErrWalletNotFound}
		svc := NewService(repo, new(mockAttempts))

		err := svc.Set(context.Background(), 7, "123456")
		assert.NoError(t, err)
		assert.NotNil(t, repo.wallet)
		assert.Equal(t, uint(7), repo.wallet.UserID)
		assert.Equal(t, int64(0), repo.wallet.Balance)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("success resets the failure counter", func(t *testing.T) {
		repo := &stubRepo{wallet: &models.Wallet{ID: 1, UserID: 1, PINHash: hashPIN(t, "1234")}}
		attempts := new(mockAttempts)
		attempts.On("IsLocked", ctx, uint(1)).Return(false, nil)
		attempts.On("Reset", ctx, uint(1)).Return(nil)

		svc := NewService(repo, attempts)
		assert.NoError(t, svc.Verify(ctx, 1, "1234"))
		attempts.AssertExpectations(t)
	})

	t.Run("mismatch is unauthorized and counted", func(t *testing.T) {
		repo := &stubRepo{wallet: &models.Wallet{ID: 1, UserID: 1, PINHash: hashPIN(t, "1234")}}
		attempts := new(mockAttempts)
		attempts.On("IsLocked", ctx, uint(1)).Return(false, nil)
		attempts.On("RecordFailure", ctx, uint(1), Window).Return(int64(1), nil)

		svc := NewService(repo, attempts)
		assert.ErrorIs(t, svc.Verify(ctx, 1, "9999"), domainerr.ErrPINMismatch)
		attempts.AssertExpectations(t)
	})

	t.Run("third consecutive failure locks for the lockout window", func(t *testing.T) {
		repo := &stubRepo{wallet: &models.Wallet{ID: 1, UserID: 1, PINHash: hashPIN(t, "1234")}}
		attempts := new(mockAttempts)
		attempts.On("IsLocked", ctx, uint(1)).Return(false, nil)
		attempts.On("RecordFailure", ctx, uint(1), Window).Return(int64(3), nil)
		attempts.On("Lock", ctx, uint(1), LockDuration).Return(nil)

		svc := NewService(repo, attempts)
		assert.ErrorIs(t, svc.Verify(ctx, 1, "9999"), domainerr.ErrPINLocked)
		attempts.AssertExpectations(t)
	})

	t.Run("locked owner cannot verify even with the right pin", func(t *testing.T) {
		repo := &stubRepo{wallet: &models.Wallet{ID: 1, UserID: 1, PINHash: hashPIN(t, "1234")}}
		attempts := new(mockAttempts)
		attempts.On("IsLocked", ctx, uint(1)).Return(true, nil)

		svc := NewService(repo, attempts)
		assert.ErrorIs(t, svc.Verify(ctx, 1, "1234"), domainerr.ErrPINLocked)
		attempts.AssertExpectations(t)
	})

	t.Run("no pin configured is unauthorized", func(t *testing.T) {
		repo := &stubRepo{wallet: &models.Wallet{ID: 1, UserID: 1}}
		attempts := new(mockAttempts)
		attempts.On("IsLocked", ctx, uint(1)).Return(false, nil)

		svc := NewService(repo, attempts)
		assert.ErrorIs(t, svc.Verify(ctx, 1, "1234"), domainerr.ErrPINNotSet)
	})

	t.Run("missing wallet is treated as no pin", func(t *testing.T) {
		repo := &stubRepo{walletErr: repositories.ErrWalletNotFound}
		attempts := new(mockAttempts)
		attempts.On("IsLocked", ctx, uint(1)).Return(false, nil)

		svc := NewService(repo, attempts)
		assert.ErrorIs(t, svc.Verify(ctx, 1, "1234"), domainerr.ErrPINNotSet)
	})
}
