package core

import (
	"encoding/json"
	"testing"
)

func TestModelIDIsStable(t *testing.T) {
	var m Model = exampleFast
	first := m.ID()
	for range 100 {
		if m.ID() != first {
			t.Fatalf("ID() changed: %q -> %q", first, m.ID())
		}
	}
	if first == "" {
		t.Fatal("ID() should not be empty")
	}
}

func TestModelName(t *testing.T) {
	m := ModelName("openai/gpt-4o")
	if m.ID() != "openai/gpt-4o" {
		t.Errorf("ID() = %q", m.ID())
	}
	if m.Info().Name != "openai/gpt-4o" {
		t.Errorf("Info().Name = %q", m.Info().Name)
	}
}

func TestDescribeModel(t *testing.T) {
	if got := DescribeModel(exampleFast); got.ID != "mymodel-fast" || got.Name != "mymodel-fast" {
		t.Errorf("DescribeModel(plain) = %+v", got)
	}
	if got := DescribeModel(nil); got != (ModelInfo{}) {
		t.Errorf("DescribeModel(nil) = %+v", got)
	}
}

func TestModelInfoString(t *testing.T) {
	if s := (ModelInfo{ID: "gpt-4o", Name: "GPT-4o"}).String(); s != "GPT-4o" {
		t.Errorf("String() = %q", s)
	}
	if s := (ModelInfo{ID: "gpt-4o"}).String(); s != "gpt-4o" {
		t.Errorf("String() without name = %q", s)
	}
}

func TestAsModel(t *testing.T) {
	if m, ok := AsModel[exampleModel](exampleSlow); !ok || m != exampleSlow {
		t.Errorf("AsModel(exampleSlow) = %v, %v", m, ok)
	}
	if _, ok := AsModel[exampleModel](ModelName("mymodel-fast")); ok {
		t.Error("AsModel should not convert a different type")
	}
}

func TestTokenUsage(t *testing.T) {
	var u TokenUsage
	if !u.IsZero() {
		t.Error("zero value should report IsZero")
	}
	sum := u.Add(TokenUsage{InputTokens: 2, OutputTokens: 3, TotalTokens: 5}).Add(TokenUsage{InputTokens: 1, TotalTokens: 1})
	want := TokenUsage{InputTokens: 3, OutputTokens: 3, TotalTokens: 6}
	if sum != want {
		t.Errorf("Add() = %+v, want %+v", sum, want)
	}
	if sum.String() != "3 input + 3 output = 6 total" {
		t.Errorf("String() = %q", sum.String())
	}
}

func TestResponseJSON(t *testing.T) {
	data, err := json.Marshal(Response{Text: "hi", Usage: TokenUsage{TotalTokens: 2}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"text":"hi","usage":{"input_tokens":0,"output_tokens":0,"total_tokens":2}}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestNewRequest(t *testing.T) {
	if r := NewRequest("hello"); r.Text != "hello" {
		t.Errorf("Text = %q", r.Text)
	}
}
