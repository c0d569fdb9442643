package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecretNeverPrintsValue(t *testing.T) {
	s := NewSecret("sk-abc123xyz")

	outputs := []string{
		s.String(),
		fmt.Sprint(s),
		fmt.Sprintf("%v", s),
		fmt.Sprintf("%+v", s),
		fmt.Sprintf("%s", s),
		fmt.Sprintf("%q", s),
		fmt.Sprintf("%x", s),
		fmt.Sprintf("%#v", s),
		fmt.Sprintf("%v", struct{ Key Secret }{s}),
	}
	for _, out := range outputs {
		if strings.Contains(out, "abc123") {
			t.Errorf("secret leaked in %q", out)
		}
	}
	if got := fmt.Sprintf("%#v", s); got != "core.Secret{[REDACTED]}" {
		t.Errorf("%%#v = %q", got)
	}
}

func TestSecretEncoding(t *testing.T) {
	s := NewSecret("sk-abc123xyz")

	data, err := json.Marshal(map[string]Secret{"key": s})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"key":"[REDACTED]"}` {
		t.Errorf("json = %s", data)
	}

	text, err := s.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "[REDACTED]" {
		t.Errorf("text = %s", text)
	}
}

func TestSecretExpose(t *testing.T) {
	s := NewSecret("sk-abc123xyz")
	if s.Expose() != "sk-abc123xyz" {
		t.Errorf("Expose() = %q", s.Expose())
	}
	if s.IsEmpty() {
		t.Error("IsEmpty() = true")
	}
	if !NewSecret("").IsEmpty() {
		t.Error("empty secret should report IsEmpty")
	}
}
