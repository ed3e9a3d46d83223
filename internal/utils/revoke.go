package utils

import (
	"context" // Context for Redis operations
	"sync"    // Guards the in-memory denylist
	"time"    // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// TokenDenylist remembers revoked token ids until they would have expired anyway
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const denylistPrefix = "token:denylist:"

// RedisDenylist stores revoked token ids in Redis with a TTL
type RedisDenylist struct {
	rdb *redis.Client
}

// NewRedisDenylist wraps a Redis client
func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb}
}

// Revoke marks jti as revoked for ttl
func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Already expired, nothing to remember
	}
	return d.rdb.Set(ctx, denylistPrefix+jti, "1", ttl).Err() // Set value in Redis with TTL
}

// IsRevoked reports whether jti was revoked
func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistPrefix+jti).Result() // Check key in Redis
	if err != nil {
		return false, err // Redis error
	}
	return n > 0, nil
}

// MemoryDenylist keeps revoked token ids in process memory. It is used when
// no Redis address is configured and in tests.
type MemoryDenylist struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewMemoryDenylist creates an empty denylist
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{expires: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	for k, exp := range d.expires {
		if now.After(exp) {
			delete(d.expires, k)
		}
	}
	d.expires[jti] = now.Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.expires[jti]
	return ok && time.Now().Before(exp), nil
}
