// Package openai provides the OpenAI adapter for LatchLM, built on the
// official openai-go SDK.
package openai

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go"

	"github.com/latchlm/latchlm/core"
)

const providerName = "openai"

// OpenAI is a core.Provider for the OpenAI Responses API.
// OpenAI is safe for concurrent use.
type OpenAI struct {
	config     Config
	client     *openai.Client
	ownsClient bool
}

// New creates a new OpenAI provider with the given API key and options.
// An empty key yields a provider-kind error.
func New(apiKey string, opts ...Option) (*OpenAI, error) {
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

	p := &OpenAI{config: cfg}
	if p.config.HTTPClient == nil {
		p.config.HTTPClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
		p.ownsClient = true
	}
	p.client = openai.NewClient(p.config.requestOptions()...)
	return p, nil
}

// NewFromEnv creates a provider using the key in OPENAI_API_KEY.
//
//	provider, err := openai.NewFromEnv(openai.WithOrgID("org-xxx"))
func NewFromEnv(opts ...Option) (*OpenAI, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, core.NewProviderError(providerName, EnvAPIKey+" is not set")
	}
	return New(key, opts...)
}

// Name returns the provider identifier.
func (p *OpenAI) Name() string {
	return providerName
}

// Models returns the list of available models.
func (p *OpenAI) Models() []core.ModelInfo {
	return Models()
}

// ParseModel resolves a model identifier.
func (p *OpenAI) ParseModel(id string) (core.Model, error) {
	return Catalog().ParseModel(id)
}

// SendRequest sends the prompt and returns the complete answer.
func (p *OpenAI) SendRequest(ctx context.Context, model core.Model, req core.Request) (*core.Response, error) {
	m, err := resolveModel(model)
	if err != nil {
		return nil, err
	}
	return p.doRequest(ctx, m, req)
}

// SendStreaming sends the prompt and streams the answer.
func (p *OpenAI) SendStreaming(ctx context.Context, model core.Model, req core.Request) *core.Stream {
	m, err := resolveModel(model)
	if err != nil {
		return core.ErrorStream(err)
	}
	return p.doStream(ctx, m, req)
}

// Close releases idle connections held by a provider-owned HTTP client.
func (p *OpenAI) Close() error {
	if p.ownsClient {
		p.config.HTTPClient.CloseIdleConnections()
	}
	return nil
}

// Compile-time checks.
var (
	_ core.Provider = (*OpenAI)(nil)
	_ core.Catalog  = (*OpenAI)(nil)
	_ core.Named    = (*OpenAI)(nil)
)
