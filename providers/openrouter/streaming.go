package openrouter

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers/internal/sse"
)

// doneMarker ends an OpenRouter stream.
const doneMarker = "[DONE]"

// doStream performs a streaming chat completion.
//
// Every event is independent: a malformed chunk or an error event yields an
// error and the stream continues. A read failure yields a transport error
// and ends the stream, as does the [DONE] marker.
func (p *OpenRouter) doStream(ctx context.Context, model Model, req core.Request) *core.Stream {
	return core.NewStream(func(yield func(*core.Response, error) bool) {
		ctx, cancel := p.callContext(ctx)
		defer cancel()

		resp, err := p.do(ctx, http.MethodPost, "chat/completions", buildRequest(model, req, true))
		if err != nil {
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		for ev, err := range sse.Events(resp.Body) {
			if err != nil {
				yield(nil, newNetworkError(err))
				return
			}
			if ev.Data == doneMarker {
				return
			}

			if apiErr := bodyError(ev.Data); apiErr != nil {
				if !yield(nil, apiErr) {
					return
				}
				continue
			}

			var chunk chatResponse
			if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
				if !yield(nil, newDecodeError(err)) {
					return
				}
				continue
			}

			if !yield(mapResponse(&chunk), nil) {
				return
			}
		}
	})
}
