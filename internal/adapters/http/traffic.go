package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mkravchenko/receiptdrop/internal/config"
)

const backpressureWait = 100 * time.Millisecond

// trafficControl applies the config-gated rate limit and a bound on
// concurrent submissions. Everything else passes through untouched.
func trafficControl(next http.Handler, cfg config.Config) http.Handler {
	handler := next
	if cfg.MaxConcurrentUploads > 0 {
		handler = backpressureMiddleware(handler, cfg.MaxConcurrentUploads, backpressureWait)
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = cfg.RateLimitRPS
		}
		handler = rateLimitMiddleware(handler, rate.Limit(cfg.RateLimitRPS), burst)
	}
	return handler
}

func rateLimitMiddleware(next http.Handler, rps rate.Limit, burst int) http.Handler {
	limiter := rate.NewLimiter(rps, burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// backpressureMiddleware caps in-flight submission uploads; a saturated
// server sheds load with 503 instead of queueing 15MB bodies.
func backpressureMiddleware(next http.Handler, maxInFlight int, wait time.Duration) http.Handler {
	slots := make(chan struct{}, maxInFlight)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/submissions" {
			next.ServeHTTP(w, r)
			return
		}

		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case slots <- struct{}{}:
			defer func() { <-slots }()
			next.ServeHTTP(w, r)
		case <-timer.C:
			w.Header().Set("Retry-After", strconv.Itoa(int(wait/time.Second)+1))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server is busy, try again shortly"})
		}
	})
}
