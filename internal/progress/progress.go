package progress

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/eugenenazirov/senzing-package/internal/logging"
)

// DefaultInterval is the minimum gap between two progress lines.
const DefaultInterval = 30 * time.Second

type rateLimiter interface {
	Allow() bool
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(interval time.Duration) rateLimiter {
	if interval <= 0 {
		interval = DefaultInterval
	}

	// Burst of one; the first call is always allowed.
	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (l *limiterAdapter) Allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// Reporter logs a throttled progress line while a long filesystem walk runs.
type Reporter struct {
	operation string
	msgs      *logging.Messages
	limiter   rateLimiter
	count     int
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithInterval overrides DefaultInterval.
func WithInterval(interval time.Duration) Option {
	return func(r *Reporter) {
		r.limiter = newTokenBucketLimiter(interval)
	}
}

// WithRateLimiter overrides the limiter (primarily for tests).
func WithRateLimiter(limiter rateLimiter) Option {
	return func(r *Reporter) {
		r.limiter = limiter
	}
}

// New creates a Reporter for operation.
func New(operation string, msgs *logging.Messages, opts ...Option) *Reporter {
	r := &Reporter{
		operation: operation,
		msgs:      msgs,
		limiter:   newTokenBucketLimiter(DefaultInterval),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Observe records one processed path. It is safe to call on a nil Reporter.
func (r *Reporter) Observe(path string) {
	if r == nil {
		return
	}
	r.count++
	if r.msgs == nil || !r.limiter.Allow() {
		return
	}
	r.msgs.Debug(logging.MsgProgress, r.operation, r.count, path)
}

// Count returns the number of observed paths.
func (r *Reporter) Count() int {
	if r == nil {
		return 0
	}
	return r.count
}
