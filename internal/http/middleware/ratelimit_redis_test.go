package middleware

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client), srv
}

func TestRedisLimiterEnforcesLimit(t *testing.T) {
	limiter, _ := newRedisLimiter(t)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("apply:job1:u1", 3, time.Minute), "attempt %d", i+1)
	}
	assert.False(t, limiter.Allow("apply:job1:u1", 3, time.Minute))
}

func TestRedisLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newRedisLimiter(t)

	require.True(t, limiter.Allow("auth:1.2.3.4", 1, time.Minute))
	require.False(t, limiter.Allow("auth:1.2.3.4", 1, time.Minute))
	assert.True(t, limiter.Allow("auth:5.6.7.8", 1, time.Minute))
}

func TestRedisLimiterWindowExpires(t *testing.T) {
	limiter, srv := newRedisLimiter(t)

	require.True(t, limiter.Allow("auth:1.2.3.4", 1, time.Minute))
	require.False(t, limiter.Allow("auth:1.2.3.4", 1, time.Minute))

	srv.FastForward(time.Minute + time.Second)

	assert.True(t, limiter.Allow("auth:1.2.3.4", 1, time.Minute))
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	limiter, srv := newRedisLimiter(t)
	srv.Close()

	assert.True(t, limiter.Allow("auth:1.2.3.4", 1, time.Minute))
	assert.True(t, limiter.Allow("auth:1.2.3.4", 1, time.Minute))
}

func TestNilRedisLimiterAllows(t *testing.T) {
	var limiter *RedisLimiter
	assert.True(t, limiter.Allow("anything", 1, time.Minute))
}

func TestMemoryLimiterEnforcesLimit(t *testing.T) {
	limiter := NewMemoryLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("register:1.2.3.4", 5, time.Minute), "attempt %d", i+1)
	}
	assert.False(t, limiter.Allow("register:1.2.3.4", 5, time.Minute))
	assert.True(t, limiter.Allow("register:9.9.9.9", 5, time.Minute))
}
