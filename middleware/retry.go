package middleware

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/latchlm/latchlm/core"
)

// RetryPolicy determines retry behavior for failed calls.
type RetryPolicy interface {
	// NextDelay returns the delay before the next retry attempt and whether to retry.
	// attempt starts at 0 for the first retry after the initial failure.
	NextDelay(attempt int, err error) (delay time.Duration, ok bool)
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts (default: 3)
	BaseDelay  time.Duration // Initial delay before first retry (default: 1s)
	MaxDelay   time.Duration // Maximum delay cap (default: 30s)
	Jitter     float64       // Jitter factor 0.0-1.0 (default: 0.2)
}

// DefaultRetryPolicy returns exponential backoff with jitter, at most 3
// retries and a 30s cap.
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Jitter:     0.2,
	})
}

// NewRetryPolicy creates a retry policy with the given configuration.
// Zero or out-of-range fields take their defaults.
func NewRetryPolicy(cfg RetryConfig) RetryPolicy {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if cfg.Jitter < 0 || cfg.Jitter > 1 {
		cfg.Jitter = 0.2
	}
	return &exponentialBackoff{cfg: cfg}
}

type exponentialBackoff struct {
	cfg RetryConfig
}

func (e *exponentialBackoff) NextDelay(attempt int, err error) (time.Duration, bool) {
	if attempt >= e.cfg.MaxRetries || !IsRetryable(err) {
		return 0, false
	}

	// baseDelay * 2^attempt, then +/- jitter
	delay := float64(e.cfg.BaseDelay) * math.Pow(2, float64(attempt))
	if e.cfg.Jitter > 0 {
		jitterRange := delay * e.cfg.Jitter
		delay += (rand.Float64()*2 - 1) * jitterRange
	}

	delay = min(delay, float64(e.cfg.MaxDelay))
	delay = max(delay, 0)

	return time.Duration(delay), true
}

// IsRetryable reports whether err is worth another attempt: transport
// failures other than cancellation, rate limiting and server errors.
// Parse, invalid-model, provider and other 4xx failures are final.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var e *core.Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case core.KindTransport:
		return true
	case core.KindAPI:
		return e.Status == http.StatusTooManyRequests || (e.Status >= 500 && e.Status < 600)
	default:
		return false
	}
}

// Retry returns middleware that retries SendRequest according to policy.
// A nil policy uses DefaultRetryPolicy.
//
// Streams are forwarded untouched: fragments already handed to the caller
// cannot be taken back, so a failed stream is never replayed.
func Retry(policy RetryPolicy) Middleware {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}
	return func(next core.Provider) core.Provider {
		return &retry{base: base{next: next}, policy: policy}
	}
}

type retry struct {
	base
	policy RetryPolicy
}

func (r *retry) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := r.next.SendRequest(ctx, model, req)
		if err == nil {
			return resp, nil
		}

		delay, ok := r.policy.NextDelay(attempt, err)
		if !ok {
			return resp, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return resp, err
		case <-timer.C:
		}
	}
}

func (r *retry) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	return r.next.SendStreaming(ctx, model, req)
}
