// Package gemini provides the Google Gemini adapter for LatchLM.
package gemini

import (
	"context"
	"net/http"
	"os"

	"github.com/latchlm/latchlm/core"
)

const providerName = "gemini"

// Gemini is a core.Provider for the Google Gemini API.
// Gemini is safe for concurrent use.
type Gemini struct {
	config     Config
	ownsClient bool
}

// New creates a new Gemini provider with the given API key and options.
// An empty key yields a provider-kind error.
func New(apiKey string, opts ...Option) (*Gemini, error) {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		APIVersion: DefaultAPIVersion,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.APIKey.IsEmpty() {
		return nil, core.NewProviderError(providerName, "missing API key")
	}

	p := &Gemini{config: cfg}
	if p.config.HTTPClient == nil {
		p.config.HTTPClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
		p.ownsClient = true
	}
	return p, nil
}

// NewFromEnv creates a provider using the key in GEMINI_API_KEY.
func NewFromEnv(opts ...Option) (*Gemini, error) {
	key, ok := os.LookupEnv(EnvAPIKey)
	if !ok || key == "" {
		return nil, core.NewProviderError(providerName, EnvAPIKey+" is not set")
	}
	return New(key, opts...)
}

// Name returns the provider identifier.
func (p *Gemini) Name() string {
	return providerName
}

// Models returns the list of available models.
func (p *Gemini) Models() []core.ModelInfo {
	return Models()
}

// ParseModel resolves a model identifier.
func (p *Gemini) ParseModel(id string) (core.Model, error) {
	return Catalog().ParseModel(id)
}

// buildHeaders constructs the HTTP headers for an API request.
func (p *Gemini) buildHeaders() http.Header {
	headers := make(http.Header)

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	headers.Set("x-goog-api-key", p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json, text/event-stream")

	return headers
}

// SendRequest sends the prompt and returns the complete answer.
func (p *Gemini) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	m, err := resolveModel(model)
	if err != nil {
		return nil, err
	}
	return p.doRequest(ctx, m, req)
}

// SendStreaming sends the prompt and streams the answer.
func (p *Gemini) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	m, err := resolveModel(model)
	if err != nil {
		return core.ErrorStream(err)
	}
	return p.doStream(ctx, m, req)
}

// Close releases idle connections held by a provider-owned HTTP client.
func (p *Gemini) Close() error {
	if p.ownsClient {
		p.config.HTTPClient.CloseIdleConnections()
	}
	return nil
}

// Compile-time checks.
var (
	_ core.Provider = (*Gemini)(nil)
	_ core.Catalog  = (*Gemini)(nil)
	_ core.Named    = (*Gemini)(nil)
)
