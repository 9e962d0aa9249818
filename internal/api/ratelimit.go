package api

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter/internal/pkg/httputil"
	"github.com/ignite/newsletter/internal/pkg/logger"
)

const defaultSubscribeLimit = 10 // signups per IP per window

// rateLimiter caps signups per client IP using a fixed one-minute window in
// Redis. A nil client disables limiting, and Redis errors fail open: a cache
// outage must not take signups down with it.
type rateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func newRateLimiter(client *redis.Client, limit int) *rateLimiter {
	if limit <= 0 {
		limit = defaultSubscribeLimit
	}
	return &rateLimiter{client: client, limit: limit, window: time.Minute}
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.client == nil || l.allow(r) {
			next.ServeHTTP(w, r)
			return
		}
		httputil.Error(w, http.StatusTooManyRequests, "too many signup attempts, try again later")
	})
}

func (l *rateLimiter) allow(r *http.Request) bool {
	ctx := r.Context()
	// RealIP middleware rewrites RemoteAddr to a bare IP behind a proxy;
	// direct connections still carry a port.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	key := fmt.Sprintf("ratelimit:subscribe:%s", host)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Warn("rate limiter unavailable, allowing request", "error", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			logger.Warn("rate limiter expire failed", "error", err)
		}
	}
	return count <= int64(l.limit)
}
