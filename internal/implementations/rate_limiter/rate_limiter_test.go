package ratelimiter

import (
	"context"
	"testing"
	"time"

	"ums/internal/core/domain/logging"
	ratelimiter "ums/internal/core/domain/rate_limiter"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/require"
)

func TestWindowKey(t *testing.T) {
	at := time.Date(2023, 5, 1, 10, 42, 13, 0, time.UTC)

	require.Equal(
		t,
		WindowKey("login::a@b.c", ratelimiter.Hour, at),
		WindowKey("login::a@b.c", ratelimiter.Hour, at.Add(17*time.Minute)),
	)
	require.NotEqual(
		t,
		WindowKey("login::a@b.c", ratelimiter.Hour, at),
		WindowKey("login::a@b.c", ratelimiter.Hour, at.Add(18*time.Minute)),
	)
	require.NotEqual(
		t,
		WindowKey("login::a@b.c", ratelimiter.Minute, at),
		WindowKey("login::a@b.c", ratelimiter.Minute, at.Add(time.Minute)),
	)
	require.NotEqual(
		t,
		WindowKey("login::a@b.c", ratelimiter.Hour, at),
		WindowKey("login::a@b.c", ratelimiter.Hour, at.AddDate(0, 0, 1)),
	)
}

func TestRedisFailureAllowsAttempt(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer client.Close()
	log := logging.NewFakeLogger()
	limiter := NewRedis(client, log, time.Now)

	result := limiter.CheckLimit(context.Background(), "key", ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour})

	require.True(t, result.IsAllowed)
	require.Equal(t, 1, log.Count(logging.ERROR))
}
