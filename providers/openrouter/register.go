package openrouter

import (
	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers"
)

func init() {
	providers.Register(providerName, providers.Registration{
		New: func(s providers.Settings) (core.Provider, error) {
			var opts []Option
			if s.BaseURL != "" {
				opts = append(opts, WithBaseURL(s.BaseURL))
			}
			p, err := New(s.APIKey, opts...)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		Catalog: Catalog(),
		EnvVar:  EnvAPIKey,
	})
}
