package openai

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
)

// buildPayload encodes a single-prompt Responses API request.
func buildPayload(model Model, req core.Request, stream bool) ([]byte, error) {
	return json.Marshal(responsesRequest{
		Model:  model.ID(),
		Input:  req.Text,
		Stream: stream,
	})
}

// mapResponse converts an answer into a core.Response.
// The texts of every content part of every output item are joined with a
// single space; items without content, such as reasoning, add nothing.
func mapResponse(r *responsesResponse) *core.Response {
	return &core.Response{
		Text:  extractText(r.Output),
		Model: r.Model,
		Usage: mapUsage(r.Usage),
	}
}

func extractText(output []responsesOutput) string {
	var texts []string
	for _, item := range output {
		for _, c := range item.Content {
			if c.Text != "" {
				texts = append(texts, c.Text)
			}
		}
	}
	return strings.Join(texts, " ")
}

func mapUsage(u *responsesUsage) core.TokenUsage {
	if u == nil {
		return core.TokenUsage{}
	}
	usage := core.TokenUsage{
		InputTokens:  u.InputTokens,
		OutputTokens: u.OutputTokens,
		TotalTokens:  u.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return usage
}
