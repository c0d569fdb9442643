// Package providers selects LatchLM provider adapters by name.
//
// Each adapter lives in its own subpackage (providers/gemini,
// providers/openai, providers/openrouter) and registers itself from init.
// Import an adapter for its side effect to make it available:
//
//	import _ "github.com/latchlm/latchlm/providers/gemini"
//
//	p, err := providers.Create("gemini", providers.Settings{APIKey: key})
//
// # Adapter rules
//
// Adapters implement core.Provider and:
//   - are safe for concurrent calls on one value
//   - reject unknown models with an invalid-model error before any I/O
//   - map HTTP failures through providers/internal/normalize
//   - stop reading and close the response body when a stream is abandoned
//   - never retry on their own
package providers

import "github.com/latchlm/latchlm/core"

// Re-exported core types so adapters and callers can import one package.
type (
	Provider  = core.Provider
	Model     = core.Model
	ModelInfo = core.ModelInfo
	Request   = core.Request
	Response  = core.Response
	Stream    = core.Stream
)
