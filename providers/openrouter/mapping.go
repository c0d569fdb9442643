package openrouter

import (
	"strings"

	"github.com/latchlm/latchlm/core"
)

func buildRequest(model Model, req core.Request, stream bool) *chatRequest {
	return &chatRequest{
		Model:    model.ID(),
		Messages: []chatMessage{{Role: "user", Content: req.Text}},
		Stream:   stream,
	}
}

// mapResponse converts a completion or a stream chunk into a core.Response.
// Choice contents are joined with a single space.
func mapResponse(resp *chatResponse) *core.Response {
	texts := make([]string, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		switch {
		case c.Message != nil:
			texts = append(texts, c.Message.Content)
		case c.Delta != nil:
			texts = append(texts, c.Delta.Content)
		}
	}

	out := &core.Response{
		Text:  strings.Join(texts, " "),
		Model: resp.Model,
	}
	if resp.Usage != nil {
		out.Usage = core.TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out
}

func mapModels(resp *modelsResponse) []core.ModelInfo {
	list := make([]core.ModelInfo, 0, len(resp.Data))
	for _, m := range resp.Data {
		list = append(list, core.ModelInfo{ID: m.ID, Name: m.Name})
	}
	return list
}
