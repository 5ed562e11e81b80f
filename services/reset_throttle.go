package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cashflowx/cashflowx_backend/utils"
)

const (
	resetLimit  = 5
	resetWindow = time.Hour
)

// ResetThrottle limits how often forgot-password issues a new password for one email.
type ResetThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// RedisResetThrottle counts requests per email in Redis.
type RedisResetThrottle struct {
	client *redis.Client
}

// NewResetThrottle returns a Redis-backed throttle, or one that always allows
// when client is nil.
func NewResetThrottle(client *redis.Client) ResetThrottle {
	if client == nil {
		return noThrottle{}
	}
	return &RedisResetThrottle{client: client}
}

func (t *RedisResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	err := utils.CountAttempt(ctx, t.client, "password_reset_attempts:"+email, resetLimit, resetWindow)
	if errors.Is(err, utils.ErrTooManyAttempts) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	return true, nil
}

type noThrottle struct{}

func (noThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
