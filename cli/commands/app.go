// Package commands implements the latchlm command tree using Cobra.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/latchlm/latchlm/cli/config"
	"github.com/latchlm/latchlm/cli/keystore"
	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ProviderFactory creates a provider by registered name.
type ProviderFactory func(name string, s providers.Settings) (core.Provider, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// EnvLookup reads an environment variable.
type EnvLookup func(key string) (string, bool)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig     ConfigLoader
	createProvider ProviderFactory
	newKeystore    KeystoreFactory
	lookupEnv      EnvLookup
	stdin          io.Reader
	stdout         io.Writer
	stderr         io.Writer
	logger         zerolog.Logger

	cfgFile    string
	envFile    string
	provider   string
	model      string
	jsonOutput bool
	verbose    bool
	cfg        *config.Config
	dotenv     map[string]string

	promptStream  bool
	promptRender  bool
	promptTimeout time.Duration
	modelsRemote  bool
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithProviderFactory injects a provider factory dependency.
func WithProviderFactory(factory ProviderFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.createProvider = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithEnv injects the environment lookup used for API keys.
func WithEnv(lookup EnvLookup) AppOption {
	return func(a *App) {
		if lookup != nil {
			a.lookupEnv = lookup
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:     config.LoadConfig,
		createProvider: providers.Create,
		newKeystore:    keystore.NewKeystore,
		lookupEnv:      os.LookupEnv,
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

// Execute runs the root command with os.Args.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command. Cancelling ctx aborts any call in
// flight. Every returned error carries an exit code.
func (a *App) ExecuteContext(ctx context.Context) error {
	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if _, ok := err.(*exitError); ok {
		return err
	}
	// Flag and argument errors from cobra.
	a.printError(err)
	return exitWithCode(ExitValidation, err)
}

// SetArgs overrides the command-line arguments, mainly for tests.
func (a *App) SetArgs(args ...string) {
	a.root.SetArgs(args)
}
