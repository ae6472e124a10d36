package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/evyataryagoni/geolocate/internal/limiter"
)

// RateLimitMiddleware enforces rate limiting per client IP, returning 429
// when exceeded.
func RateLimitMiddleware(lim limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr

			// Behind a proxy or load balancer the real client is in a
			// header. Priority: X-Real-IP, then the first entry of
			// X-Forwarded-For, then the peer address.
			if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
				ip = realIP
			} else if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
				first, _, _ := strings.Cut(forwardedFor, ",")
				ip = strings.TrimSpace(first)
			}

			if !lim.Allow(ip) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Rate limit exceeded. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
