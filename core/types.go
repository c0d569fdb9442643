package core

import "fmt"

// Model identifies a model variant offered by a provider.
//
// ID returns the identifier the vendor API expects. Implementations MUST return
// the same non-empty string for the lifetime of the value and MUST be safe to
// call from multiple goroutines without synchronization.
type Model interface {
	ID() string
}

// Describer is implemented by models that carry a human-readable name.
type Describer interface {
	Info() ModelInfo
}

// ModelInfo describes a model: the technical identifier used in API requests
// and a display name.
type ModelInfo struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// String returns the display name, or the ID when no name is set.
func (m ModelInfo) String() string {
	if m.Name == "" {
		return m.ID
	}
	return m.Name
}

// ModelName is a free-form model identifier.
// Use it for providers that accept arbitrary model names (e.g. "openai/gpt-4o"
// on OpenRouter) or when the model comes from configuration.
type ModelName string

// ID returns the name unchanged.
func (m ModelName) ID() string {
	return string(m)
}

// Info returns a ModelInfo whose name equals its ID.
func (m ModelName) Info() ModelInfo {
	return ModelInfo{ID: string(m), Name: string(m)}
}

// Compile-time check that ModelName implements Model and Describer.
var (
	_ Model     = ModelName("")
	_ Describer = ModelName("")
)

// DescribeModel returns the ModelInfo of m, falling back to its ID when m
// does not implement Describer.
func DescribeModel(m Model) ModelInfo {
	if m == nil {
		return ModelInfo{}
	}
	if d, ok := m.(Describer); ok {
		return d.Info()
	}
	return ModelInfo{ID: m.ID(), Name: m.ID()}
}

// AsModel reports whether m holds a value of type M and returns it.
// Providers use it to recover their own model enumeration from the dynamic
// Model they were handed.
func AsModel[M Model](m Model) (M, bool) {
	v, ok := m.(M)
	return v, ok
}

// Catalog is implemented by providers that know their model enumeration.
// It lets runtime code resolve a model string against whichever provider was
// selected.
type Catalog interface {
	// Models returns the models the provider accepts.
	Models() []ModelInfo

	// ParseModel resolves a model identifier.
	// Unknown identifiers yield an invalid-model *Error.
	ParseModel(id string) (Model, error)
}

// Request is the outbound envelope passed to a Provider.
//
// Fields added in later revisions keep their zero value meaning "provider
// default", so existing call sites keep working unchanged.
type Request struct {
	// Text is the prompt to be processed by the model.
	Text string `json:"text"`
}

// NewRequest returns a Request carrying the given prompt.
func NewRequest(text string) Request {
	return Request{Text: text}
}

// Response is the inbound envelope produced by a Provider.
// For streaming calls each element carries one fragment of the output.
type Response struct {
	Text  string     `json:"text"`
	Model string     `json:"model,omitempty"`
	Usage TokenUsage `json:"usage"`
}

// TokenUsage tracks token consumption for a request.
// A zero count means the provider did not report it.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// IsZero reports whether no counts were reported.
func (u TokenUsage) IsZero() bool {
	return u.InputTokens == 0 && u.OutputTokens == 0 && u.TotalTokens == 0
}

// Add returns the element-wise sum of u and o.
func (u TokenUsage) Add(o TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + o.InputTokens,
		OutputTokens: u.OutputTokens + o.OutputTokens,
		TotalTokens:  u.TotalTokens + o.TotalTokens,
	}
}

func (u TokenUsage) String() string {
	return fmt.Sprintf("%d input + %d output = %d total", u.InputTokens, u.OutputTokens, u.TotalTokens)
}
