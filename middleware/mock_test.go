package middleware

import (
	"context"
	"sync/atomic"

	"github.com/latchlm/latchlm/core"
)

// scriptedProvider answers from funcs and counts calls and closes.
type scriptedProvider struct {
	request func(attempt int) (*core.Response, error)
	stream  func() *core.Stream

	calls  atomic.Int32
	closed atomic.Int32
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) SendRequest(_ context.Context, _ core.Model, _ core.Request) (*core.Response, error) {
	n := p.calls.Add(1)
	if p.request == nil {
		return &core.Response{Text: "ok"}, nil
	}
	return p.request(int(n) - 1)
}

func (p *scriptedProvider) SendStreaming(_ context.Context, _ core.Model, _ core.Request) *core.Stream {
	p.calls.Add(1)
	if p.stream == nil {
		return core.SliceStream(&core.Response{Text: "ok"})
	}
	return p.stream()
}

func (p *scriptedProvider) Close() error {
	p.closed.Add(1)
	return nil
}

var testModel = core.ModelName("mymodel-fast")

var usage = core.TokenUsage{InputTokens: 3, OutputTokens: 5, TotalTokens: 8}

func fragments() *core.Stream {
	return core.SliceStream(
		&core.Response{Text: "Hel", Model: "mymodel-fast"},
		&core.Response{Text: "lo", Usage: usage},
	)
}

func apiError(status int) error {
	e := core.NewAPIError("scripted", status, "")
	e.Code = "upstream"
	e.RequestID = "req-1"
	return e
}
