package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptStore counts consecutive failed PIN verifications per owner in a
// rolling window and holds the lockout flag once the threshold is crossed.
type AttemptStore struct {
	client *redis.Client
}

func NewAttemptStore(client *redis.Client) *AttemptStore {
	return &AttemptStore{client: client}
}

func attemptsKey(userID uint) string {
	return fmt.Sprintf("pin:attempts:%d", userID)
}

func lockKey(userID uint) string {
	return fmt.Sprintf("pin:lock:%d", userID)
}

// IsLocked reports whether PIN verification is currently locked for the owner.
func (s *AttemptStore) IsLocked(ctx context.Context, userID uint) (bool, error) {
	n, err := s.client.Exists(ctx, lockKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check pin lock: %w", err)
	}
	return n > 0, nil
}

// RecordFailure increments the failure counter inside the rolling window and
// returns the new count. The window TTL is set on the first failure only.
func (s *AttemptStore) RecordFailure(ctx context.Context, userID uint, window time.Duration) (int64, error) {
	key := attemptsKey(userID)
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to record pin failure: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("failed to set pin window: %w", err)
		}
	}
	return count, nil
}

// Lock starts the lockout for the owner and clears the counter.
func (s *AttemptStore) Lock(ctx context.Context, userID uint, duration time.Duration) error {
	if err := s.client.Set(ctx, lockKey(userID), 1, duration).Err(); err != nil {
		return fmt.Errorf("failed to lock pin: %w", err)
	}
	return s.client.Del(ctx, attemptsKey(userID)).Err()
}

// Reset clears the failure counter after a successful verification.
func (s *AttemptStore) Reset(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, attemptsKey(userID)).Err()
}
