// Package middleware provides decorators that add cross-cutting behavior to
// any core.Provider: logging, telemetry hooks, Prometheus metrics,
// OpenTelemetry tracing and retries.
//
// Decorators forward requests, responses, streams and errors unchanged. They
// implement core.Wrapper so core.ProviderName still reports the adapter name,
// and io.Closer so an owner that closes the outermost layer releases the
// adapter underneath.
package middleware

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/latchlm/latchlm/core"
)

// Middleware wraps a provider to add behavior around its calls.
type Middleware func(next core.Provider) core.Provider

// Chain combines multiple middleware into one.
// The first middleware is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next core.Provider) core.Provider {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Apply wraps p with the given middleware, first one outermost.
func Apply(p core.Provider, middlewares ...Middleware) core.Provider {
	if len(middlewares) == 0 {
		return p
	}
	return Chain(middlewares...)(p)
}

// base carries the forwarding plumbing shared by every decorator.
type base struct {
	next core.Provider
}

func (b base) Unwrap() core.Provider { return b.next }

// Close releases the wrapped provider if it can be closed.
func (b base) Close() error {
	if c, ok := b.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// call identifies one provider invocation.
type call struct {
	ID       string
	Provider string
	Model    string
	Stream   bool
	Start    time.Time
}

func newCall(p core.Provider, model core.Model, stream bool) call {
	c := call{
		ID:       uuid.NewString(),
		Provider: core.ProviderName(p),
		Stream:   stream,
		Start:    time.Now(),
	}
	if model != nil {
		c.Model = model.ID()
	}
	return c
}

// outcome is what a decorator learns once a call has finished.
// For streams, Err is the first failure and Usage the last reported usage.
type outcome struct {
	Usage     core.TokenUsage
	Err       error
	Abandoned bool
}

func outcomeOf(resp *core.Response, err error) outcome {
	var o outcome
	if resp != nil {
		o.Usage = resp.Usage
	}
	o.Err = err
	return o
}

// observeStream defers open until the stream is iterated and reports the
// outcome once iteration stops, whether the stream ended or was abandoned.
func observeStream(open func() (*core.Stream, func(outcome))) *core.Stream {
	return core.NewStream(func(yield func(*core.Response, error) bool) {
		s, finish := open()

		var out outcome
		defer func() { finish(out) }()

		// Stopping on an error element is a failed stream, not an abandoned one.
		for resp, err := range s.Iter() {
			if err != nil && out.Err == nil {
				out.Err = err
			}
			if resp != nil && !resp.Usage.IsZero() {
				out.Usage = resp.Usage
			}
			if !yield(resp, err) {
				out.Abandoned = err == nil
				return
			}
		}
	})
}

// errorFields extracts the loggable classification of err.
func errorFields(err error) (kind core.Kind, status int, code, requestID string) {
	var e *core.Error
	if errors.As(err, &e) {
		return e.Kind, e.Status, e.Code, e.RequestID
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return core.KindTransport, 0, "", ""
	}
	return "other", 0, "", ""
}

// status labels a finished call: "ok", "abandoned" or the error kind.
func (o outcome) status() string {
	switch {
	case o.Err != nil:
		kind, _, _, _ := errorFields(o.Err)
		return string(kind)
	case o.Abandoned:
		return "abandoned"
	default:
		return "ok"
	}
}
