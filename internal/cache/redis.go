package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}

// BankCache is a TTL'd read cache for question-bank query results. A nil
// receiver or nil client disables every operation, so callers never branch on
// whether caching is configured.
type BankCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBankCache(client *redis.Client, ttl time.Duration) *BankCache {
	if client == nil {
		return nil
	}
	return &BankCache{client: client, ttl: ttl}
}

func (c *BankCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, "qbank:"+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *BankCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, "qbank:"+key, raw, c.ttl)
}

// Invalidate drops all cached bank queries. Generation and rating both call
// this; the key space is small enough that a full flush beats tracking
// per-query dependencies.
func (c *BankCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "qbank:*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
