package user

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxAttempts = 10
)

// LoginThrottle counts failed credential attempts per email in redis so a
// single address cannot be hammered. The generic-rejection policy on login
// already hides which field failed; this bounds how fast it can be probed.
type LoginThrottle struct {
	redis *redis.Client
}

func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{redis: client}
}

func throttleKey(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}

// Allow reports whether another attempt for this email is permitted. Redis
// being down never blocks logins.
func (t *LoginThrottle) Allow(ctx context.Context, email string) bool {
	if t == nil || t.redis == nil {
		return true
	}

	n, err := t.redis.Get(ctx, throttleKey(email)).Int64()
	if err != nil {
		return true
	}
	return n < throttleMaxAttempts
}

// RecordFailure bumps the counter and refreshes the window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	if t == nil || t.redis == nil {
		return
	}

	key := throttleKey(email)
	pipe := t.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, throttleWindow)
	_, _ = pipe.Exec(ctx)
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if t == nil || t.redis == nil {
		return
	}
	_ = t.redis.Del(ctx, throttleKey(email)).Err()
}
