package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "auth:revoked:"

// TokenBlocklist remembers logged-out token ids until they would have expired anyway
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisBlocklist struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisBlocklist stores revocations as expiring keys
func NewRedisBlocklist(client *redis.Client) TokenBlocklist {
	return &redisBlocklist{client: client, now: time.Now}
}

func (b *redisBlocklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err()
}

func (b *redisBlocklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.client.Get(ctx, revokedPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type noopBlocklist struct{}

// NoopBlocklist is used when no Redis is configured; logout then only clears the cookie
func NoopBlocklist() TokenBlocklist {
	return noopBlocklist{}
}

func (noopBlocklist) Revoke(context.Context, string, time.Time) error { return nil }

func (noopBlocklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
