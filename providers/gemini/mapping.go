package gemini

import (
	"strings"

	"github.com/tidwall/sjson"

	"github.com/latchlm/latchlm/core"
)

// buildPayload renders the request body for a prompt.
func buildPayload(req core.Request) ([]byte, error) {
	return sjson.SetBytes([]byte(requestTemplate), "contents.0.parts.text", req.Text)
}

// mapResponse converts a Gemini answer into a core.Response.
// The text is the concatenation of every non-thought part of every candidate.
func mapResponse(resp *geminiResponse, model Model) *core.Response {
	var text strings.Builder
	for _, c := range resp.Candidates {
		for _, part := range c.Content.Parts {
			if part.Thought {
				continue
			}
			text.WriteString(part.Text)
		}
	}

	out := &core.Response{
		Text:  text.String(),
		Model: model.ID(),
	}
	if resp.UsageMetadata != nil {
		out.Usage = mapUsage(resp.UsageMetadata)
	}
	return out
}

func mapUsage(u *geminiUsage) core.TokenUsage {
	total := u.TotalTokenCount
	if total == 0 {
		total = u.PromptTokenCount + u.CandidatesTokenCount
	}
	return core.TokenUsage{
		InputTokens:  u.PromptTokenCount,
		OutputTokens: u.CandidatesTokenCount,
		TotalTokens:  total,
	}
}
