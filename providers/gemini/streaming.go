package gemini

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers/internal/sse"
)

// doStream performs a streamGenerateContent call.
//
// Each server event becomes one fragment. A malformed event yields a parse
// error and the stream continues with the next event. A read failure yields
// a transport error and ends the stream.
func (p *Gemini) doStream(ctx context.Context, model Model, req core.Request) *core.Stream {
	return core.NewStream(func(yield func(*core.Response, error) bool) {
		ctx, cancel := p.callContext(ctx)
		defer cancel()

		resp, err := p.post(ctx, p.endpoint(model, "streamGenerateContent?alt=sse"), req)
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

			var event geminiResponse
			if err := json.Unmarshal([]byte(ev.Data), &event); err != nil {
				if !yield(nil, newDecodeError(err)) {
					return
				}
				continue
			}

			if !yield(mapResponse(&event, model), nil) {
				return
			}
		}
	})
}
