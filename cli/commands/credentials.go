package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/latchlm/latchlm/cli/keystore"
	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/middleware"
	"github.com/latchlm/latchlm/providers"
)

// keySource tells where an API key came from.
type keySource string

const (
	sourceKeystore keySource = "keystore"
	sourceEnv      keySource = "env"
	sourceNone     keySource = ""
)

// apiKeyEnv returns the environment variable holding the key for name.
func (a *App) apiKeyEnv(name string) string {
	if pc := a.cfg.GetProvider(name); pc != nil && pc.APIKeyEnv != "" {
		return pc.APIKeyEnv
	}
	if r, ok := providers.Lookup(name); ok && r.EnvVar != "" {
		return r.EnvVar
	}
	return strings.ToUpper(name) + "_API_KEY"
}

// resolveKey finds the API key for name: keystore first, then environment.
// A keystore that cannot be opened is skipped.
func (a *App) resolveKey(name string) (core.Secret, keySource) {
	if key, ok := a.keystoreKey(name); ok {
		return key, sourceKeystore
	}
	if v := a.getenv(a.apiKeyEnv(name)); v != "" {
		return core.NewSecret(v), sourceEnv
	}
	return core.Secret{}, sourceNone
}

func (a *App) keystoreKey(name string) (core.Secret, bool) {
	ks, err := a.newKeystore()
	if err != nil {
		a.logger.Debug().Err(err).Msg("keystore unavailable")
		return core.Secret{}, false
	}

	key, err := ks.Get(name)
	if err != nil {
		var nf *keystore.ErrKeyNotFound
		if !errors.As(err, &nf) {
			a.logger.Debug().Err(err).Msg("keystore read failed")
		}
		return core.Secret{}, false
	}
	return key, !key.IsEmpty()
}

// selectedProvider returns the provider chosen by flag or config.
func (a *App) selectedProvider() (string, error) {
	if a.provider == "" {
		return "", exitWithCode(ExitValidation,
			errors.New("provider required: use --provider or set default_provider in config"))
	}
	if !providers.IsRegistered(a.provider) {
		return "", exitWithCode(ExitValidation,
			fmt.Errorf("unknown provider %q (available: %s)", a.provider, strings.Join(providers.List(), ", ")))
	}
	return a.provider, nil
}

// openProvider builds the selected provider, wrapped with logging, and
// resolves the selected model against its catalog before any request.
func (a *App) openProvider() (*core.Owned, core.Model, error) {
	name, err := a.selectedProvider()
	if err != nil {
		return nil, nil, err
	}

	if a.model == "" {
		return nil, nil, exitWithCode(ExitValidation,
			errors.New("model required: use --model or set default_model in config"))
	}
	model, err := providers.ParseModel(name, a.model)
	if err != nil {
		return nil, nil, err
	}

	p, err := a.connect(name)
	if err != nil {
		return nil, nil, err
	}
	return p, model, nil
}

// connect creates the named provider with its key and configured base URL.
func (a *App) connect(name string) (*core.Owned, error) {
	key, source := a.resolveKey(name)
	if source == sourceNone {
		return nil, exitWithCode(ExitValidation,
			fmt.Errorf("no API key for %s: run 'latchlm keys set %s' or set %s", name, name, a.apiKeyEnv(name)))
	}
	a.logger.Debug().Str("provider", name).Str("key_source", string(source)).Msg("api key resolved")

	settings := providers.Settings{APIKey: key.Expose()}
	if pc := a.cfg.GetProvider(name); pc != nil {
		settings.BaseURL = pc.BaseURL
	}

	p, err := a.createProvider(name, settings)
	if err != nil {
		return nil, err
	}
	return core.Own(middleware.Apply(p, middleware.Logging(a.logger))), nil
}
