package gemini

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/latchlm/latchlm/core"
)

func TestBuildPayload(t *testing.T) {
	body, err := buildPayload(core.NewRequest(`say "hi"`))
	if err != nil {
		t.Fatalf("buildPayload() error = %v", err)
	}

	want := `{"contents":[{"parts":{"text":"say \"hi\""}}]}`
	if string(body) != want {
		t.Errorf("payload = %s, want %s", body, want)
	}
	if got := gjson.GetBytes(body, "contents.0.parts.text").String(); got != `say "hi"` {
		t.Errorf("text = %q", got)
	}
}

func TestMapResponse(t *testing.T) {
	resp := &geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: "Hello"}, {Text: ", "}}}},
			{Content: geminiContent{Parts: []geminiPart{{Text: "planning", Thought: true}, {Text: "world"}}}},
		},
		UsageMetadata: &geminiUsage{PromptTokenCount: 3, CandidatesTokenCount: 4, TotalTokenCount: 9},
	}

	got := mapResponse(resp, Flash25)

	if got.Text != "Hello, world" {
		t.Errorf("Text = %q, want %q", got.Text, "Hello, world")
	}
	if got.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", got.Model)
	}
	want := core.TokenUsage{InputTokens: 3, OutputTokens: 4, TotalTokens: 9}
	if got.Usage != want {
		t.Errorf("Usage = %+v, want %+v", got.Usage, want)
	}
}

func TestMapResponseWithoutUsage(t *testing.T) {
	got := mapResponse(&geminiResponse{}, Flash20)

	if got.Text != "" || !got.Usage.IsZero() {
		t.Errorf("mapResponse(empty) = %+v", got)
	}
}

func TestMapUsageComputesMissingTotal(t *testing.T) {
	got := mapUsage(&geminiUsage{PromptTokenCount: 2, CandidatesTokenCount: 5})
	if got.TotalTokens != 7 {
		t.Errorf("TotalTokens = %d, want 7", got.TotalTokens)
	}
}
