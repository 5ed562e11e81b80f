package utils

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrTooManyAttempts = errors.New("too many attempts")

// CountAttempt increments the counter at key, starting its expiry window on
// the first attempt, and fails once more than limit attempts fall in the window.
func CountAttempt(ctx context.Context, client *redis.Client, key string, limit int64, window time.Duration) error {
	attempts, err := client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		client.Expire(ctx, key, window)
	}

	if attempts > limit {
		return ErrTooManyAttempts
	}
	return nil
}
