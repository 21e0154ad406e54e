package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	ratelimiter "ums/internal/core/domain/rate_limiter"

	"github.com/go-redis/redis/v9"
)

// Redis counts attempts in fixed windows. A Redis failure lets the attempt through.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func WindowKey(key string, interval ratelimiter.Interval, now time.Time) string {
	d := interval.Duration()
	return fmt.Sprintf("ratelimit::%s::%d", key, now.UTC().Truncate(d).Unix())
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k := WindowKey(key, limit.Interval, r.now())

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, limit.Interval.Duration())
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed()
	}
	if err != nil {
		r.log.Error(
			ctx,
			"Could not check rate limit due to Redis client error.",
			logging.Entry("key", key),
			logging.Entry("err", err),
		)
		return ratelimiter.Allowed()
	}
	intCmd := cmds[0].(*redis.IntCmd)
	if intCmd.Val() > int64(limit.Value) {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}
