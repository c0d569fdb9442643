package core

import "fmt"

const redacted = "[REDACTED]"

// Secret holds a credential such as an API key.
// Formatting, JSON and text encoding all print a placeholder; only Expose
// returns the value.
//
//	key := core.NewSecret(os.Getenv("GEMINI_API_KEY"))
//	log.Printf("using %v", key) // using [REDACTED]
type Secret struct {
	value string
}

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the wrapped value. Use it only when building the outbound
// request.
func (s Secret) Expose() string {
	return s.value
}

// IsEmpty reports whether no credential was provided.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return "core.Secret{" + redacted + "}"
}

// Format covers every verb, including %x and %q, which would otherwise
// bypass String.
func (s Secret) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = f.Write([]byte(s.GoString()))
		return
	}
	_, _ = f.Write([]byte(redacted))
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
