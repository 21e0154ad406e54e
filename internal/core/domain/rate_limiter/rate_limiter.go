package ratelimiter

import (
	"context"
	"errors"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

type Interval struct {
	value int
}

var (
	Minute = Interval{}
	Hour   = Interval{value: 1}
)

func (i Interval) Duration() time.Duration {
	if i == Hour {
		return time.Hour
	}
	return time.Minute
}

type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

// RateLimiter counts attempts per key within the current interval window.
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
