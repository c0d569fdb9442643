package openai

import (
	"net/http"
	"time"

	"github.com/openai/openai-go/option"

	"github.com/latchlm/latchlm/core"
)

// Config holds configuration for the OpenAI provider.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey core.Secret

	// BaseURL is the API base URL. Defaults to https://api.openai.com/v1/
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to a client owned by the provider.
	HTTPClient *http.Client

	// OrgID is the optional OpenAI organization ID.
	OrgID string

	// ProjectID is the optional OpenAI project ID.
	ProjectID string

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout bounds each call, including the whole body of a stream.
	Timeout time.Duration
}

// DefaultBaseURL is the default OpenAI API base URL.
const DefaultBaseURL = "https://api.openai.com/v1/"

// EnvAPIKey is the environment variable read by NewFromEnv.
const EnvAPIKey = "OPENAI_API_KEY"

// Option configures the OpenAI provider.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = core.NewSecret(key)
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. The provider does not close it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithOrgID sets the OpenAI organization ID header.
func WithOrgID(org string) Option {
	return func(c *Config) {
		c.OrgID = org
	}
}

// WithProjectID sets the OpenAI project ID header.
func WithProjectID(project string) Option {
	return func(c *Config) {
		c.ProjectID = project
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// requestOptions translates the config into SDK options.
// SDK retries are disabled; callers opt into retries with middleware.
func (c Config) requestOptions() []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(c.APIKey.Expose()),
		option.WithBaseURL(c.BaseURL),
		option.WithHTTPClient(c.HTTPClient),
		option.WithMaxRetries(0),
	}
	if c.OrgID != "" {
		opts = append(opts, option.WithHeader("OpenAI-Organization", c.OrgID))
	}
	if c.ProjectID != "" {
		opts = append(opts, option.WithHeader("OpenAI-Project", c.ProjectID))
	}
	for key, values := range c.Headers {
		for _, v := range values {
			opts = append(opts, option.WithHeaderAdd(key, v))
		}
	}
	return opts
}
