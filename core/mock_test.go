package core

import (
	"context"
	"sync/atomic"
)

// exampleModel is a two-variant model enumeration used across the tests.
type exampleModel string

const (
	exampleFast exampleModel = "mymodel-fast"
	exampleSlow exampleModel = "mymodel-slow"
)

func (m exampleModel) ID() string { return string(m) }

// exampleProvider answers any known model with a fixed text and streams it
// in two fragments.
type exampleProvider struct {
	closed atomic.Int32
}

func (p *exampleProvider) Name() string { return "example" }

func (p *exampleProvider) SendRequest(ctx context.Context, model Model, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewTransportError("example", err)
	}
	m, ok := AsModel[exampleModel](model)
	if !ok || (m != exampleFast && m != exampleSlow) {
		return nil, NewInvalidModelError("example", model.ID())
	}
	return &Response{Text: "Example response text", Model: m.ID(), Usage: TokenUsage{InputTokens: 1, OutputTokens: 3, TotalTokens: 4}}, nil
}

func (p *exampleProvider) SendStreaming(ctx context.Context, model Model, req Request) *Stream {
	if _, ok := AsModel[exampleModel](model); !ok {
		return ErrorStream(NewInvalidModelError("example", model.ID()))
	}
	return SliceStream(&Response{Text: "Example "}, &Response{Text: "response text"})
}

func (p *exampleProvider) Close() error {
	p.closed.Add(1)
	return nil
}

// failingProvider returns one error per kind depending on the prompt.
type failingProvider struct{}

func (failingProvider) SendRequest(ctx context.Context, model Model, req Request) (*Response, error) {
	switch req.Text {
	case "transport":
		return nil, NewTransportError("", context.DeadlineExceeded)
	case "api":
		return nil, NewAPIError("", 429, "slow down")
	case "parse":
		return nil, NewParseError("", errBadBody)
	default:
		return nil, NewInvalidModelError("", model.ID())
	}
}

func (p failingProvider) SendStreaming(ctx context.Context, model Model, req Request) *Stream {
	_, err := p.SendRequest(ctx, model, req)
	return ErrorStream(err)
}

type bodyError struct{}

func (bodyError) Error() string { return "unexpected end of JSON input" }

var errBadBody error = bodyError{}
