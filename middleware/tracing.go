package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/latchlm/latchlm/core"
)

// TracerName identifies this package in trace data.
const TracerName = "github.com/latchlm/latchlm/middleware"

// Span attribute keys.
const (
	AttrProvider      = attribute.Key("gen_ai.system")
	AttrModel         = attribute.Key("gen_ai.request.model")
	AttrResponseModel = attribute.Key("gen_ai.response.model")
	AttrInputTokens   = attribute.Key("gen_ai.usage.input_tokens")
	AttrOutputTokens  = attribute.Key("gen_ai.usage.output_tokens")
	AttrStream        = attribute.Key("latchlm.stream")
	AttrAbandoned     = attribute.Key("latchlm.stream.abandoned")
	AttrErrorKind     = attribute.Key("latchlm.error.kind")
	AttrHTTPStatus    = attribute.Key("http.response.status_code")
)

// Tracing returns middleware that wraps each call in a span.
// A nil tp uses the global tracer provider. The span context is passed down
// to the wrapped provider.
func Tracing(tp trace.TracerProvider) Middleware {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(TracerName)
	return func(next core.Provider) core.Provider {
		return &tracing{base: base{next: next}, tracer: tracer}
	}
}

type tracing struct {
	base
	tracer trace.Tracer
}

func (t *tracing) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	ctx, span := t.start(ctx, "latchlm.send_request", model, false)
	resp, err := t.next.SendRequest(ctx, model, req)
	o := outcomeOf(resp, err)
	if resp != nil && resp.Model != "" {
		span.SetAttributes(AttrResponseModel.String(resp.Model))
	}
	finishSpan(span, o)
	return resp, err
}

func (t *tracing) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	return observeStream(func() (*core.Stream, func(outcome)) {
		ctx, span := t.start(ctx, "latchlm.send_streaming", model, true)
		return t.next.SendStreaming(ctx, model, req), func(o outcome) { finishSpan(span, o) }
	})
}

func (t *tracing) start(ctx context.Context, name string, model core.Model, stream bool) (context.Context, trace.Span) {
	c := newCall(t.next, model, stream)
	return t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			AttrProvider.String(c.Provider),
			AttrModel.String(c.Model),
			AttrStream.Bool(stream),
		),
	)
}

func finishSpan(span trace.Span, o outcome) {
	defer span.End()

	if !o.Usage.IsZero() {
		span.SetAttributes(
			AttrInputTokens.Int64(o.Usage.InputTokens),
			AttrOutputTokens.Int64(o.Usage.OutputTokens),
		)
	}
	if o.Abandoned {
		span.SetAttributes(AttrAbandoned.Bool(true))
	}
	if o.Err != nil {
		kind, status, _, _ := errorFields(o.Err)
		span.SetAttributes(AttrErrorKind.String(string(kind)))
		if status != 0 {
			span.SetAttributes(AttrHTTPStatus.Int(status))
		}
		span.RecordError(o.Err)
		span.SetStatus(codes.Error, string(kind))
		return
	}
	span.SetStatus(codes.Ok, "")
}
