package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "archives:", 24*time.Hour), mr
}

func TestRedisStoreRevocation(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))
	assert.True(t, mr.Exists("archives:revoked:jti-1"))
	assert.Equal(t, time.Minute, mr.TTL("archives:revoked:jti-1"))

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	// 已过期的Token不写入
	require.NoError(t, s.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists("archives:revoked:jti-2"))
}

func TestRedisStoreIntakeTimer(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	_, ok, err := s.IntakeStart(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkIntakeStart(ctx, 7, at))

	raw, err := mr.Get("archives:intake:7")
	require.NoError(t, err)
	assert.Equal(t, "1717236000", raw)
	assert.Equal(t, 24*time.Hour, mr.TTL("archives:intake:7"))

	got, ok, err := s.IntakeStart(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, at.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	mr.FastForward(25 * time.Hour)
	_, ok, err = s.IntakeStart(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreReportsConnectionErrors(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	mr.Close()

	assert.Error(t, s.Ping(ctx))
	_, err := s.IsRevoked(ctx, "jti-1")
	assert.Error(t, err)
	_, _, err = s.IntakeStart(ctx, 1)
	assert.Error(t, err)
}
