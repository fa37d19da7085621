package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`
	defaultLoginLimit  = 10
	defaultLoginWindow = time.Minute
)

// LoginLimiter throttles login attempts per source address. It degrades
// open: a nil limiter, a nil client or an unreachable Redis all allow the
// attempt, so login keeps working when Redis is down or not configured.
// Key format: login:<ip>
type LoginLimiter struct {
	client *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
}

// NewLoginLimiter wraps the given Redis client. A nil client yields a nil
// limiter, which allows everything.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	if client == nil {
		return nil
	}
	return &LoginLimiter{
		client: client,
		script: redis.NewScript(loginLimitScript),
		limit:  defaultLoginLimit,
		window: defaultLoginWindow,
	}
}

// Allow reports whether another login attempt from addr fits the window.
func (l *LoginLimiter) Allow(ctx context.Context, addr string) bool {
	if l == nil || l.client == nil || addr == "" {
		return true
	}

	runCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	allowed, err := l.script.Run(runCtx, l.client,
		[]string{fmt.Sprintf("login:%s", addr)},
		l.window.Milliseconds(), l.limit,
	).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}
