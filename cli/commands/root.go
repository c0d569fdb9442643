package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/latchlm/latchlm/cli/config"
)

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "latchlm",
		Short: "LatchLM - one interface for many LLM providers",
		Long: `LatchLM sends prompts to Gemini, OpenAI and OpenRouter models through a
single provider-agnostic interface.

API keys are read from the encrypted keystore ('latchlm keys set'), then from
the environment and .env files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.latchlm/config.yaml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file to read API keys from (default is ./.env if present)")
	root.PersistentFlags().StringVarP(&a.provider, "provider", "p", "", "provider name (gemini, openai, openrouter)")
	root.PersistentFlags().StringVarP(&a.model, "model", "m", "", "model ID (e.g. gemini-2.5-flash)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.newPromptCommand())
	root.AddCommand(a.newModelsCommand())
	root.AddCommand(a.newProvidersCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

func (a *App) initConfig() error {
	a.logger = newLogger(a.stderr, a.verbose)

	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return a.fail(exitWithCode(ExitValidation, fmt.Errorf("load config: %w", err)))
	}
	a.cfg = cfg

	if err := a.loadDotenv(); err != nil {
		return a.fail(exitWithCode(ExitValidation, err))
	}

	// Apply config defaults if flags not set.
	if a.provider == "" {
		a.provider = cfg.DefaultProvider
	}
	if a.model == "" {
		a.model = cfg.ModelFor(a.provider)
	}

	a.logger.Debug().Str("config", path).Str("provider", a.provider).Str("model", a.model).Msg("configuration loaded")
	return nil
}

// loadDotenv reads --env-file, or ./.env when it exists. Values never
// override the process environment.
func (a *App) loadDotenv() error {
	path := a.envFile
	optional := path == ""
	if optional {
		path = ".env"
	}

	env, err := godotenv.Read(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file: %w", err)
	}
	a.dotenv = env
	return nil
}

// getenv looks up key in the process environment, then in the dotenv file.
func (a *App) getenv(key string) string {
	if v, ok := a.lookupEnv(key); ok && v != "" {
		return v
	}
	return a.dotenv[key]
}

// newLogger writes human-readable logs to w: errors only by default,
// everything with verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
