package middleware

import (
	"context"
	"time"

	"github.com/latchlm/latchlm/core"
)

// TelemetryHook receives notifications about call lifecycle events.
//
// Events never include credentials, prompt text or response text. Only
// operational metadata is exposed: provider, model, timing and token counts.
// Do not add fields that could carry any of those.
type TelemetryHook interface {
	// OnRequestStart is called when a call begins. For streams this is when
	// iteration starts.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when a call completes, fails or is abandoned.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting call.
type RequestStartEvent struct {
	CallID   string    // Unique per call, shared with the matching end event
	Provider string    // Provider identifier (e.g., "openai", "gemini")
	Model    string    // Model being called
	Stream   bool      // Whether this is a streaming call
	Start    time.Time // When the call started
}

// RequestEndEvent contains metadata about a finished call.
type RequestEndEvent struct {
	CallID    string
	Provider  string
	Model     string
	Stream    bool
	Start     time.Time
	End       time.Time
	Usage     core.TokenUsage // Last usage reported; zero if none
	Err       error           // First failure, nil on success
	Abandoned bool            // The consumer stopped iterating a stream early
}

// Duration returns the elapsed time for the call.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a TelemetryHook that does nothing.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

var _ TelemetryHook = NoopTelemetryHook{}

// Telemetry returns middleware that reports every call to hook.
// Hooks are called synchronously on the calling goroutine and must be safe
// for concurrent use.
func Telemetry(hook TelemetryHook) Middleware {
	if hook == nil {
		hook = NoopTelemetryHook{}
	}
	return func(next core.Provider) core.Provider {
		return &telemetry{base: base{next: next}, hook: hook}
	}
}

type telemetry struct {
	base
	hook TelemetryHook
}

func (t *telemetry) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	c := t.begin(model, false)
	resp, err := t.next.SendRequest(ctx, model, req)
	t.end(c, outcomeOf(resp, err))
	return resp, err
}

func (t *telemetry) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	return observeStream(func() (*core.Stream, func(outcome)) {
		c := t.begin(model, true)
		return t.next.SendStreaming(ctx, model, req), func(o outcome) { t.end(c, o) }
	})
}

func (t *telemetry) begin(model core.Model, stream bool) call {
	c := newCall(t.next, model, stream)
	t.hook.OnRequestStart(RequestStartEvent{
		CallID:   c.ID,
		Provider: c.Provider,
		Model:    c.Model,
		Stream:   c.Stream,
		Start:    c.Start,
	})
	return c
}

func (t *telemetry) end(c call, o outcome) {
	t.hook.OnRequestEnd(RequestEndEvent{
		CallID:    c.ID,
		Provider:  c.Provider,
		Model:     c.Model,
		Stream:    c.Stream,
		Start:     c.Start,
		End:       time.Now(),
		Usage:     o.Usage,
		Err:       o.Err,
		Abandoned: o.Abandoned,
	})
}
