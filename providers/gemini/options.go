package gemini

import (
	"net/http"
	"strings"
	"time"

	"github.com/latchlm/latchlm/core"
)

// Config holds configuration for the Gemini provider.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey core.Secret

	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// APIVersion is the path segment in front of models/. Defaults to "v1beta",
	// the only version that serves the preview and thinking models.
	APIVersion string

	// HTTPClient is the HTTP client to use. Defaults to a client owned by the provider.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout bounds each call, including the whole body of a stream.
	Timeout time.Duration
}

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion = "v1beta"

	// EnvAPIKey is the environment variable read by NewFromEnv.
	EnvAPIKey = "GEMINI_API_KEY"
)

// Option configures the Gemini provider.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = core.NewSecret(key)
	}
}

// WithBaseURL points the provider at another API root, such as a proxy or a
// test server. A trailing slash is ignored.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = strings.TrimRight(url, "/")
	}
}

// WithAPIVersion selects the API version path, e.g. "v1".
func WithAPIVersion(version string) Option {
	return func(c *Config) {
		if version != "" {
			c.APIVersion = strings.Trim(version, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client. The provider does not close it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithHeader adds an extra header. It cannot replace the API key header.
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
