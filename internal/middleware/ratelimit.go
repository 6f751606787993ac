package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/projectdesk/projectdesk/internal/cache"
)

// RateLimiter checks a per-IP rate limit. *cache.Cache satisfies it.
type RateLimiter interface {
	CheckAuthRateLimit(ctx context.Context, ip string, ratePerMinute, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Cache   RateLimiter
	Enabled bool
	RPM     int
	Burst   int
}

// RateLimitAuth returns a middleware that rate-limits the credential
// endpoints per client IP, to slow down brute-force attempts. The limiter
// fails open when Redis is unavailable.
func RateLimitAuth(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Cache.CheckAuthRateLimit(r.Context(), clientIP(r), cfg.RPM, cfg.Burst)
			if err != nil {
				// Fail open: an unavailable limiter must not take the
				// login path down with it.
				cfg.Logger.Warn("rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(result.RetryAfter.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"message":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the request's client address without the port.
// RealIP middleware runs earlier, so RemoteAddr already reflects
// forwarded headers when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
