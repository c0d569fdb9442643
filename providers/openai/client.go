package openai

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
)

func (p *OpenAI) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.config.Timeout > 0 {
		return context.WithTimeout(ctx, p.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// doRequest posts the prompt to the Responses API and waits for the answer.
// The SDK carries auth, headers and error decoding; the body is ours.
func (p *OpenAI) doRequest(ctx context.Context, model Model, req core.Request) (*core.Response, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	body, err := buildPayload(model, req, false)
	if err != nil {
		return nil, newDecodeError(err)
	}

	var raw json.RawMessage
	if err := p.client.Post(ctx, responsesPath, body, &raw); err != nil {
		return nil, convertError(err)
	}

	var resp responsesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, newDecodeError(err)
	}
	if err := failedResponse(&resp); err != nil {
		return nil, err
	}
	return mapResponse(&resp), nil
}
