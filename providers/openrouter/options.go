package openrouter

import (
	"net/http"
	"time"

	"github.com/latchlm/latchlm/core"
)

// Config holds configuration for the OpenRouter provider.
type Config struct {
	// APIKey is the OpenRouter API key (required).
	APIKey core.Secret

	// BaseURL is the API base URL. Defaults to https://openrouter.ai/api/v1/
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to a client owned by the provider.
	HTTPClient *http.Client

	// HTTPReferer is sent as the HTTP-Referer attribution header.
	HTTPReferer string

	// Title is sent as the X-Title attribution header.
	Title string

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout bounds each call, including the whole body of a stream.
	Timeout time.Duration
}

// DefaultBaseURL is the default OpenRouter API base URL.
const DefaultBaseURL = "https://openrouter.ai/api/v1/"

// EnvAPIKey is the environment variable read by NewFromEnv.
const EnvAPIKey = "OPENROUTER_API_KEY"

// Option configures the OpenRouter provider.
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

// WithHTTPReferer sets the site URL reported to OpenRouter rankings.
func WithHTTPReferer(referer string) Option {
	return func(c *Config) {
		c.HTTPReferer = referer
	}
}

// WithTitle sets the application name reported to OpenRouter rankings.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
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
