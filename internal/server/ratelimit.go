// ABOUTME: Per-client fixed-window rate limiting for the chat endpoint
// ABOUTME: Counters live in Redis; a Redis failure lets the request through
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// RateLimiter decides whether key may make another request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts requests per key in fixed windows with INCR and EXPIRE.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "portfolio:ratelimit:",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, bucket)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter failed: %w", err)
	}
	return incr.Val() <= int64(l.limit), nil
}

// clientKeyFunc returns the rate limit key for a request. The direct peer is
// the client unless it is a trusted proxy, in which case X-Forwarded-For is
// walked from the right and the first untrusted hop wins.
func clientKeyFunc(trusted []netip.Prefix) func(*http.Request) string {
	isTrusted := func(addr netip.Addr) bool {
		for _, p := range trusted {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}

	return func(r *http.Request) string {
		peer := remoteHost(r)
		addr, err := netip.ParseAddr(peer)
		if err != nil || !isTrusted(addr.Unmap()) {
			return peer
		}

		var hops []string
		for _, v := range r.Header.Values("X-Forwarded-For") {
			for _, hop := range strings.Split(v, ",") {
				if hop = strings.TrimSpace(hop); hop != "" {
					hops = append(hops, hop)
				}
			}
		}

		client := peer
		for i := len(hops) - 1; i >= 0; i-- {
			hopAddr, err := netip.ParseAddr(hops[i])
			if err != nil {
				// A malformed hop was not written by a trusted proxy.
				return client
			}
			client = hopAddr.Unmap().String()
			if !isTrusted(hopAddr.Unmap()) {
				return client
			}
		}
		return client
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func rateLimitMiddleware(limiter RateLimiter, trusted []netip.Prefix) func(http.Handler) http.Handler {
	clientKey := clientKeyFunc(trusted)
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				log.Warn("rate limiter unavailable, allowing request", "err", err)
				allowed = true
			}
			if !allowed {
				writeError(w, r, &APIError{Status: http.StatusTooManyRequests, Message: "too many chat requests, try again shortly"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
