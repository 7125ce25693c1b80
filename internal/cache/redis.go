package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stock overview cache keys
const (
	StockSummaryKey = "stock:summary"
	StockHistoryFmt = "stock:history:%s:%s"
)

var client *redis.Client

// Init initializes the Redis connection. A failed ping leaves the client
// nil and every cache call degrades to a miss.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}

// GetCachedStockSummary returns the cached stock overview if available
func GetCachedStockSummary(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, StockSummaryKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheStockSummary caches the stock overview for 2 minutes
func CacheStockSummary(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, StockSummaryKey, data, 2*time.Minute)
}

// InvalidateStockCache clears the stock overview and all history caches.
// Called after any movement or asset status change.
func InvalidateStockCache(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, StockSummaryKey)
	keys, err := client.Keys(ctx, "stock:history:*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// GetCachedStockHistory returns one item's cached ledger if available
func GetCachedStockHistory(ctx context.Context, name, brand string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(StockHistoryFmt, name, brand)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheStockHistory caches one item's ledger for 2 minutes
func CacheStockHistory(ctx context.Context, name, brand string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(StockHistoryFmt, name, brand), data, 2*time.Minute)
}
