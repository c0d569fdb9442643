package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/latchlm/latchlm/core"
)

// LLMBuckets are histogram buckets suited for LLM latencies, from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// Metrics holds the Prometheus collectors fed by the Metrics middleware.
type Metrics struct {
	Requests *prometheus.CounterVec   // latchlm_provider_requests_total{provider,model,stream,status}
	Latency  *prometheus.HistogramVec // latchlm_provider_latency_seconds{provider,model,stream}
	Tokens   *prometheus.CounterVec   // latchlm_provider_tokens_total{provider,model,direction}
	Streams  prometheus.Gauge         // latchlm_streams_active
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered by an earlier call are reused, so several
// providers can share one registry. A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "latchlm_provider_requests_total",
				Help: "Provider calls by outcome",
			},
			[]string{"provider", "model", "stream", "status"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "latchlm_provider_latency_seconds",
				Help:    "Provider call latency",
				Buckets: LLMBuckets,
			},
			[]string{"provider", "model", "stream"},
		),
		Tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "latchlm_provider_tokens_total",
				Help: "Token count",
			},
			[]string{"provider", "model", "direction"},
		),
		Streams: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "latchlm_streams_active",
				Help: "Streams currently being consumed",
			},
		),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.Requests, err = register(reg, m.Requests); err != nil {
		return nil, err
	}
	if m.Latency, err = register(reg, m.Latency); err != nil {
		return nil, err
	}
	if m.Tokens, err = register(reg, m.Tokens); err != nil {
		return nil, err
	}
	if m.Streams, err = register(reg, m.Streams); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Middleware returns middleware that records every call in m.
func (m *Metrics) Middleware() Middleware {
	return func(next core.Provider) core.Provider {
		return &metrics{base: base{next: next}, m: m}
	}
}

type metrics struct {
	base
	m *Metrics
}

func (d *metrics) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	c := newCall(d.next, model, false)
	resp, err := d.next.SendRequest(ctx, model, req)
	d.observe(c, outcomeOf(resp, err))
	return resp, err
}

func (d *metrics) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	return observeStream(func() (*core.Stream, func(outcome)) {
		c := newCall(d.next, model, true)
		d.m.Streams.Inc()
		return d.next.SendStreaming(ctx, model, req), func(o outcome) {
			d.m.Streams.Dec()
			d.observe(c, o)
		}
	})
}

func (d *metrics) observe(c call, o outcome) {
	stream := "false"
	if c.Stream {
		stream = "true"
	}

	d.m.Requests.WithLabelValues(c.Provider, c.Model, stream, o.status()).Inc()
	d.m.Latency.WithLabelValues(c.Provider, c.Model, stream).Observe(time.Since(c.Start).Seconds())

	if o.Usage.InputTokens > 0 {
		d.m.Tokens.WithLabelValues(c.Provider, c.Model, "input").Add(float64(o.Usage.InputTokens))
	}
	if o.Usage.OutputTokens > 0 {
		d.m.Tokens.WithLabelValues(c.Provider, c.Model, "output").Add(float64(o.Usage.OutputTokens))
	}
}
