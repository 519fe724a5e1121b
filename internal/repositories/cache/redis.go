// Package cache wraps the redis client used for wallet read-through caching
// and the PIN failed-attempt counters.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kolo/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

const walletTTL = 10 * time.Minute

// WalletCache is a read-through projection of wallet rows. The database is
// always the source of truth; entries are invalidated after every mutation.
type WalletCache struct {
	client *redis.Client
}

func NewWalletCache(client *redis.Client) *WalletCache {
	return &WalletCache{client: client}
}

func walletKey(userID uint) string {
	return fmt.Sprintf("wallet:%d", userID)
}

func (c *WalletCache) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	val, err := c.client.Get(ctx, walletKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	var wallet models.Wallet
	if err := json.Unmarshal([]byte(val), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *WalletCache) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, walletKey(wallet.UserID), data, walletTTL).Err()
}

func (c *WalletCache) InvalidateWallet(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, walletKey(userID)).Err()
}

// HealthCheck pings redis.
func (c *WalletCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}
