package openai

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers/internal/normalize"
	"github.com/latchlm/latchlm/providers/internal/sse"
)

// doStream posts the prompt with stream=true and yields text deltas.
//
// A malformed event is yielded as a parse error and the stream goes on.
// An error or response.failed event is yielded as an API error and ends the
// stream, as does a read failure. Usage arrives as a final fragment without
// text, taken from response.completed or response.incomplete.
func (p *OpenAI) doStream(ctx context.Context, model Model, req core.Request) *core.Stream {
	return core.NewStream(func(yield func(*core.Response, error) bool) {
		ctx, cancel := p.callContext(ctx)
		defer cancel()

		body, err := buildPayload(model, req, true)
		if err != nil {
			yield(nil, newDecodeError(err))
			return
		}

		var resp *http.Response
		if err := p.client.Post(ctx, responsesPath, body, &resp); err != nil {
			yield(nil, convertError(err))
			return
		}
		defer resp.Body.Close()

		var served string
		for ev, err := range sse.Events(resp.Body) {
			if err != nil {
				yield(nil, newNetworkError(err))
				return
			}
			if ev.Data == "[DONE]" {
				return
			}

			var event streamEvent
			if err := json.Unmarshal([]byte(ev.Data), &event); err != nil {
				if !yield(nil, newDecodeError(err)) {
					return
				}
				continue
			}

			switch event.Type {
			case "response.created", "response.in_progress":
				if event.Response != nil {
					served = event.Response.Model
				}

			case "response.output_text.delta":
				if event.Delta == "" {
					continue
				}
				if !yield(&core.Response{Text: event.Delta, Model: served}, nil) {
					return
				}

			case "response.completed", "response.incomplete":
				if event.Response == nil {
					return
				}
				usage := mapUsage(event.Response.Usage)
				if !usage.IsZero() {
					yield(&core.Response{Model: event.Response.Model, Usage: usage}, nil)
				}
				return

			case "response.failed":
				var failed responsesResponse
				if event.Response != nil {
					failed = *event.Response
				}
				if failed.Error == nil {
					failed.Error = &responsesError{Message: "response failed"}
				}
				yield(nil, failedResponse(&failed))
				return

			case "error":
				yield(nil, eventError(event, normalize.RequestID(resp.Header)))
				return
			}
		}
	})
}
