// Package openrouter provides the OpenRouter adapter for LatchLM.
package openrouter

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/latchlm/latchlm/core"
)

const providerName = "openrouter"

// OpenRouter is a core.Provider for the OpenRouter chat completions API.
// OpenRouter is safe for concurrent use.
type OpenRouter struct {
	config     Config
	ownsClient bool
}

// New creates a new OpenRouter provider with the given API key and options.
// An empty key yields a provider-kind error.
func New(apiKey string, opts ...Option) (*OpenRouter, error) {
	cfg := Config{
		APIKey:  core.NewSecret(apiKey),
		BaseURL: DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.APIKey.IsEmpty() {
		return nil, core.NewProviderError(providerName, "missing API key")
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	p := &OpenRouter{config: cfg}
	if p.config.HTTPClient == nil {
		p.config.HTTPClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
		p.ownsClient = true
	}
	return p, nil
}

// NewFromEnv creates a provider using the key in OPENROUTER_API_KEY.
func NewFromEnv(opts ...Option) (*OpenRouter, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, core.NewProviderError(providerName, EnvAPIKey+" is not set")
	}
	return New(key, opts...)
}

// Name returns the provider identifier.
func (p *OpenRouter) Name() string {
	return providerName
}

// Models returns the models learned from ListModels.
func (p *OpenRouter) Models() []core.ModelInfo {
	return Models()
}

// ParseModel validates a model identifier.
func (p *OpenRouter) ParseModel(id string) (core.Model, error) {
	return Catalog().ParseModel(id)
}

func (p *OpenRouter) buildHeaders() http.Header {
	headers := make(http.Header)

	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	headers.Set("Authorization", "Bearer "+p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")
	if p.config.HTTPReferer != "" {
		headers.Set("HTTP-Referer", p.config.HTTPReferer)
	}
	if p.config.Title != "" {
		headers.Set("X-Title", p.config.Title)
	}

	return headers
}

// SendRequest sends the prompt and returns the complete answer.
func (p *OpenRouter) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	m, err := resolveModel(model)
	if err != nil {
		return nil, err
	}
	return p.doRequest(ctx, m, req)
}

// SendStreaming sends the prompt and streams the answer.
func (p *OpenRouter) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	m, err := resolveModel(model)
	if err != nil {
		return core.ErrorStream(err)
	}
	return p.doStream(ctx, m, req)
}

// Close releases idle connections held by a provider-owned HTTP client.
func (p *OpenRouter) Close() error {
	if p.ownsClient {
		p.config.HTTPClient.CloseIdleConnections()
	}
	return nil
}

// Compile-time checks.
var (
	_ core.Provider = (*OpenRouter)(nil)
	_ core.Catalog  = (*OpenRouter)(nil)
	_ core.Named    = (*OpenRouter)(nil)
)
