package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

// Blacklist stores revoked tokens until they would have expired anyway
type Blacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// redisBlacklist keys revoked tokens by SHA-256 so raw tokens never
// land in redis
type redisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist creates a redis-backed token blacklist
func NewRedisBlacklist(client *redis.Client) Blacklist {
	return &redisBlacklist{client: client}
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:blacklist:" + hex.EncodeToString(sum[:])
}

func (b *redisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	return b.client.Set(ctx, blacklistKey(token), "1", ttl).Err()
}

func (b *redisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NoopBlacklist never blocks a token. Used when redis is not configured.
type NoopBlacklist struct{}

func (NoopBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	return nil
}

func (NoopBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	return false, nil
}
