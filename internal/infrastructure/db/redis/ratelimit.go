package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitWindow = time.Minute

// LoginLimiter counts login attempts per caller in Redis over a fixed window.
// Key format: rl:login:<key>
type LoginLimiter struct {
	client *redis.Client
	max    int
}

// NewLoginLimiter creates a LoginLimiter allowing max attempts per window.
func NewLoginLimiter(client *redis.Client, max int) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	return &LoginLimiter{client: client, max: max}
}

// Allow records one attempt for key and reports whether it is still within
// the limit. Callers should fail open on error: an unreachable limiter must
// not lock every worker out.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("rl:login:%s", key)

	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		l.client.Expire(ctx, redisKey, rateLimitWindow)
	}

	return n <= int64(l.max), nil
}
