package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	Limit    redis_rate.Limit
	Prefix   string
	KeyFunc  func(c echo.Context) string
	FailOpen bool
}

// RateLimiter counts requests in Redis when a client is configured and
// falls back to an in-process token bucket otherwise (or when Redis errors).
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	config   RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}

	rl := &RateLimiter{
		fallback: newLocalLimiter(),
		config:   cfg,
	}
	if rdb != nil {
		rl.limiter = redis_rate.NewLimiter(rdb)
	}
	return rl
}

func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rl.config.Prefix + ":" + rl.config.KeyFunc(c)

			res, err := rl.allow(c.Request().Context(), key)
			if err != nil {
				if rl.config.FailOpen {
					slog.WarnContext(c.Request().Context(), "rate limiter error, failing open", "error", err, "key", key)
					return next(c)
				}
				return c.JSON(http.StatusServiceUnavailable, errorJSON("service unavailable"))
			}

			setRateLimitHeaders(c.Response().Header(), res, rl.config.Limit)

			if res.Allowed == 0 {
				retryAfter := int(res.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, errorResponse{
					Error: fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
					Kind:  "RATE_LIMITED",
				})
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (*redis_rate.Result, error) {
	if rl.limiter == nil {
		return rl.fallback.allow(key, rl.config.Limit)
	}
	res, err := rl.limiter.Allow(ctx, key, rl.config.Limit)
	if err != nil {
		slog.WarnContext(ctx, "redis rate limiter unavailable, using local limiter", "error", err)
		return rl.fallback.allow(key, rl.config.Limit)
	}
	return res, nil
}

// KeyByIP uses echo's RealIP, which honours the configured IP extractor.
func KeyByIP(c echo.Context) string {
	return "ip:" + c.RealIP()
}

func PerWindow(requests, burst int, window time.Duration) redis_rate.Limit {
	if burst <= 0 {
		burst = requests
	}
	return redis_rate.Limit{Rate: requests, Burst: burst, Period: window}
}

func setRateLimitHeaders(h http.Header, res *redis_rate.Result, limit redis_rate.Limit) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess atomic.Int64 // unix seconds
}

type localLimiter struct {
	limiters sync.Map
	once     sync.Once
}

const (
	cleanupInterval = 5 * time.Minute
	entryTTL        = 10 * time.Minute
)

func newLocalLimiter() *localLimiter {
	return &localLimiter{}
}

func (l *localLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.sweep(time.Now().Add(-entryTTL))
	}
}

// sweep drops limiters not used since cutoff.
func (l *localLimiter) sweep(cutoff time.Time) {
	c := cutoff.Unix()
	l.limiters.Range(func(key, value any) bool {
		entry, ok := value.(*limiterEntry)
		if ok && entry.lastAccess.Load() < c {
			l.limiters.Delete(key)
		}
		return true
	})
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	l.once.Do(func() { go l.cleanup() })

	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	now := time.Now().Unix()

	entryI, loaded := l.limiters.Load(key)
	if !loaded {
		fresh := &limiterEntry{limiter: rate.NewLimiter(rate.Limit(ratePerSec), limit.Burst)}
		fresh.lastAccess.Store(now)
		entryI, _ = l.limiters.LoadOrStore(key, fresh)
	}
	entry, ok := entryI.(*limiterEntry)
	if !ok {
		return nil, fmt.Errorf("invalid limiter entry type")
	}
	entry.lastAccess.Store(now)

	allowed := entry.limiter.Allow()
	remaining := int(entry.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}

	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: -1,
		ResetAfter: time.Duration(float64(time.Second) / ratePerSec),
	}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = time.Duration(float64(time.Second) / ratePerSec)
	}
	return res, nil
}
