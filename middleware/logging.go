package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/latchlm/latchlm/core"
)

// Logging returns middleware that writes one structured event per call.
//
// Events carry the provider, model, a call id, duration and token usage.
// Failures add the error kind, status, vendor code and request id.
// Prompt and response text are never logged.
func Logging(logger zerolog.Logger) Middleware {
	return func(next core.Provider) core.Provider {
		return &logging{base: base{next: next}, logger: logger}
	}
}

type logging struct {
	base
	logger zerolog.Logger
}

func (l *logging) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	c := l.begin(model, false)
	resp, err := l.next.SendRequest(ctx, model, req)
	l.end(c, outcomeOf(resp, err))
	return resp, err
}

func (l *logging) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	return observeStream(func() (*core.Stream, func(outcome)) {
		c := l.begin(model, true)
		return l.next.SendStreaming(ctx, model, req), func(o outcome) { l.end(c, o) }
	})
}

func (l *logging) begin(model core.Model, stream bool) call {
	c := newCall(l.next, model, stream)
	l.logger.Debug().
		Str("call_id", c.ID).
		Str("provider", c.Provider).
		Str("model", c.Model).
		Bool("stream", c.Stream).
		Msg("llm call started")
	return c
}

func (l *logging) end(c call, o outcome) {
	var ev *zerolog.Event
	if o.Err != nil {
		kind, status, code, requestID := errorFields(o.Err)
		ev = l.logger.Warn().
			Err(o.Err).
			Str("error_kind", string(kind))
		if status != 0 {
			ev = ev.Int("status", status)
		}
		if code != "" {
			ev = ev.Str("error_code", code)
		}
		if requestID != "" {
			ev = ev.Str("request_id", requestID)
		}
	} else {
		ev = l.logger.Info()
	}

	ev = ev.Str("call_id", c.ID).
		Str("provider", c.Provider).
		Str("model", c.Model).
		Bool("stream", c.Stream).
		Dur("duration", time.Since(c.Start))

	if o.Abandoned {
		ev = ev.Bool("abandoned", true)
	}
	if !o.Usage.IsZero() {
		ev = ev.Int64("input_tokens", o.Usage.InputTokens).
			Int64("output_tokens", o.Usage.OutputTokens).
			Int64("total_tokens", o.Usage.TotalTokens)
	}

	if o.Err != nil {
		ev.Msg("llm call failed")
		return
	}
	ev.Msg("llm call finished")
}
