package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/latchlm/latchlm/providers"

	// Adapters register themselves with the providers registry.
	_ "github.com/latchlm/latchlm/providers/gemini"
	_ "github.com/latchlm/latchlm/providers/openai"
	_ "github.com/latchlm/latchlm/providers/openrouter"
)

// providerEntry is one line of the providers command output.
type providerEntry struct {
	Name      string `json:"name"`
	EnvVar    string `json:"env_var"`
	KeySource string `json:"key_source,omitempty"`
	Default   bool   `json:"default,omitempty"`
}

func (a *App) newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List available providers and where their API keys come from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []providerEntry
			for _, name := range providers.List() {
				_, source := a.resolveKey(name)
				entries = append(entries, providerEntry{
					Name:      name,
					EnvVar:    a.apiKeyEnv(name),
					KeySource: string(source),
					Default:   name == a.provider,
				})
			}

			if a.jsonOutput {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			missing := color.New(color.FgYellow)
			tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tENV VAR\tAPI KEY")
			for _, e := range entries {
				name := e.Name
				if e.Default {
					name += " (default)"
				}
				key := e.KeySource
				if key == "" {
					key = missing.Sprint("missing")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, e.EnvVar, key)
			}
			return tw.Flush()
		},
	}
}
