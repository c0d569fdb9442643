package middleware

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latchlm/latchlm/core"
)

func tag(name string, order *[]string) Middleware {
	return func(next core.Provider) core.Provider {
		*order = append(*order, name)
		return next
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	Chain(tag("outer", &order), tag("inner", &order))(&scriptedProvider{})

	// Applied innermost first so that "outer" wraps everything.
	assert.Equal(t, []string{"inner", "outer"}, order)
}

func TestApplyWithoutMiddleware(t *testing.T) {
	p := &scriptedProvider{}
	assert.Same(t, p, Apply(p))
}

func TestDecoratorsForwardAndUnwrap(t *testing.T) {
	inner := &scriptedProvider{}
	p := Apply(inner,
		Logging(testLogger(io.Discard)),
		Telemetry(nil),
		Tracing(nil),
		Retry(nil),
	)

	assert.Equal(t, "scripted", core.ProviderName(p))

	resp, err := p.SendRequest(context.Background(), testModel, core.NewRequest("hi"))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)

	got, err := p.SendStreaming(context.Background(), testModel, core.NewRequest("hi")).Collect()
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Text)
	assert.EqualValues(t, 2, inner.calls.Load())
}

func TestCloseReachesAdapter(t *testing.T) {
	inner := &scriptedProvider{}
	owned := core.Own(Apply(inner, Logging(testLogger(io.Discard)), Retry(nil)))

	require.NoError(t, owned.Close())
	require.NoError(t, owned.Close())
	assert.EqualValues(t, 1, inner.closed.Load())
}

func TestObserveStreamIsLazy(t *testing.T) {
	inner := &scriptedProvider{}
	p := Telemetry(nil)(inner)

	s := p.SendStreaming(context.Background(), testModel, core.NewRequest("hi"))
	assert.Zero(t, inner.calls.Load())

	_, err := s.Collect()
	require.NoError(t, err)
	assert.EqualValues(t, 1, inner.calls.Load())
}

func TestObserveStreamOutcome(t *testing.T) {
	tests := []struct {
		name      string
		stream    func() *core.Stream
		take      int
		wantUsage core.TokenUsage
		wantErr   bool
		abandoned bool
	}{
		{name: "completed", stream: fragments, take: -1, wantUsage: usage},
		{name: "abandoned", stream: fragments, take: 1, abandoned: true},
		{
			name: "failed",
			stream: func() *core.Stream {
				return core.NewStream(func(yield func(*core.Response, error) bool) {
					if !yield(&core.Response{Text: "a"}, nil) {
						return
					}
					yield(nil, core.NewTransportError("scripted", io.ErrUnexpectedEOF))
				})
			},
			take:    -1,
			wantErr: true,
		},
		{
			name: "consumer stops at error",
			stream: func() *core.Stream {
				return core.NewStream(func(yield func(*core.Response, error) bool) {
					if !yield(nil, core.NewParseError("scripted", io.ErrUnexpectedEOF)) {
						return
					}
					yield(&core.Response{Text: "more"}, nil)
				})
			},
			take:    1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got outcome
			s := observeStream(func() (*core.Stream, func(outcome)) {
				return tt.stream(), func(o outcome) { got = o }
			})

			n := 0
			for range s.Iter() {
				n++
				if n == tt.take {
					break
				}
			}

			assert.Equal(t, tt.wantUsage, got.Usage)
			assert.Equal(t, tt.wantErr, got.Err != nil)
			assert.Equal(t, tt.abandoned, got.Abandoned)
		})
	}
}

func TestOutcomeStatus(t *testing.T) {
	assert.Equal(t, "ok", outcome{}.status())
	assert.Equal(t, "abandoned", outcome{Abandoned: true}.status())
	assert.Equal(t, "api", outcome{Err: apiError(500)}.status())
	assert.Equal(t, "transport", outcome{Err: context.Canceled}.status())
	assert.Equal(t, "other", outcome{Err: io.EOF}.status())
}
