package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cooldownKeyPrefix = "otp:cooldown:"
	hourlyKeyPrefix   = "otp:sends:"
)

// ErrSendThrottled means the phone number is inside its cooldown window or
// over its hourly send budget.
var ErrSendThrottled = errors.New("send throttled")

// SendLimiter throttles dispatches per phone number: a short cooldown
// between consecutive sends plus an hourly cap. It is advisory; redis being
// down must not take the dispatch path down with it.
type SendLimiter struct {
	client     redis.UniversalClient
	cooldown   time.Duration
	maxPerHour int
}

func NewSendLimiter(client redis.UniversalClient, cooldown time.Duration, maxPerHour int) *SendLimiter {
	return &SendLimiter{
		client:     client,
		cooldown:   cooldown,
		maxPerHour: maxPerHour,
	}
}

// Reserve consumes one send slot for phoneNumber. It returns
// ErrSendThrottled when the number must wait, or a wrapped infrastructure
// error when redis itself failed.
func (l *SendLimiter) Reserve(ctx context.Context, phoneNumber string) error {
	ok, err := l.client.SetNX(ctx, cooldownKeyPrefix+phoneNumber, 1, l.cooldown).Result()
	if err != nil {
		return fmt.Errorf("set send cooldown failed: %w", err)
	}
	if !ok {
		return ErrSendThrottled
	}

	hourlyKey := hourlyKeyPrefix + phoneNumber
	count, err := l.client.Incr(ctx, hourlyKey).Result()
	if err != nil {
		return fmt.Errorf("increment hourly counter failed: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, hourlyKey, time.Hour).Err(); err != nil {
			return fmt.Errorf("expire hourly counter failed: %w", err)
		}
	}
	if int(count) > l.maxPerHour {
		return ErrSendThrottled
	}

	return nil
}
