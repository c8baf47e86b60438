package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mcoot/torosvacas/internal/metrics"
)

// RateLimiterConfig holds the per-client token bucket settings
type RateLimiterConfig struct {
	// RPS is the sustained requests per second. Zero disables limiting.
	RPS             rate.Limit
	Burst           int
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig returns the default rate limit settings
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RPS:             10,
		Burst:           20,
		CleanupInterval: 5 * time.Minute,
	}
}

// RejectHandler writes the response for a rate limited request
type RejectHandler func(w http.ResponseWriter, r *http.Request, retryAfter int)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a token bucket per client address
type RateLimiter struct {
	config   RateLimiterConfig
	logger   *slog.Logger
	recorder metrics.Recorder
	reject   RejectHandler

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a RateLimiter and starts its cleanup loop.
// Call Stop to end the loop.
func NewRateLimiter(config RateLimiterConfig, logger *slog.Logger, recorder metrics.Recorder, reject RejectHandler) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultRateLimiterConfig().CleanupInterval
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if reject == nil {
		reject = defaultReject
	}

	rl := &RateLimiter{
		config:   config,
		logger:   logger,
		recorder: recorder,
		reject:   reject,
		clients:  make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop ends the background cleanup
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.config.RPS <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientKey(r)
		if !rl.limiterFor(client).Allow() {
			rl.recorder.RecordRateLimited()
			rl.logger.Warn("rate limit exceeded",
				slog.String("client", client),
				slog.String("request_id", GetRequestID(r.Context())),
			)
			rl.reject(w, r, retryAfterSeconds(rl.config.RPS))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientCount returns the number of tracked clients
func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) limiterFor(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.config.RPS, rl.config.Burst)}
		rl.clients[client] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops clients idle for more than two cleanup intervals
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.config.CleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, cl := range rl.clients {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.clients, client)
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(limit rate.Limit) int {
	secs := int(math.Ceil(1.0 / float64(limit)))
	if secs < 1 {
		secs = 1
	}
	return secs
}

func defaultReject(w http.ResponseWriter, _ *http.Request, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
}
