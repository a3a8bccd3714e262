package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisBlocklistRevokeAndExpire(t *testing.T) {
	mr, client := newTestClient(t)
	blocklist := NewRedisBlocklist(client)
	ctx := context.Background()

	revoked, err := blocklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blocklist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = blocklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Hour)

	revoked, err = blocklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisBlocklistSkipsExpiredTokens(t *testing.T) {
	mr, client := newTestClient(t)
	blocklist := NewRedisBlocklist(client)

	require.NoError(t, blocklist.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(revokedPrefix+"old"))
}

func TestNewFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), addr)
	assert.Error(t, err)
}

func TestNoopBlocklist(t *testing.T) {
	b := NoopBlocklist()
	require.NoError(t, b.Revoke(context.Background(), "x", time.Now().Add(time.Hour)))
	revoked, err := b.IsRevoked(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, revoked)
}
