package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers"
)

// modelLister is implemented by providers that can fetch their model list
// from the API, such as OpenRouter.
type modelLister interface {
	ListModels(ctx context.Context) ([]core.ModelInfo, error)
}

// modelEntry is one line of the models command output.
type modelEntry struct {
	Provider string `json:"provider"`
	ID       string `json:"id"`
	Name     string `json:"name"`
}

func (a *App) newModelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models a provider accepts",
		Long: `List the models a provider accepts.

Without --provider (and no default_provider in config) the catalogs of all
registered providers are listed. --remote asks the provider API for its
current list; it needs an API key and is supported by openrouter.`,
		Args: cobra.NoArgs,
		RunE: a.runModels,
	}

	cmd.Flags().BoolVar(&a.modelsRemote, "remote", false, "fetch the model list from the provider API")

	return cmd
}

func (a *App) runModels(cmd *cobra.Command, args []string) error {
	var entries []modelEntry
	var err error

	switch {
	case a.modelsRemote:
		entries, err = a.remoteModels(cmd.Context())
	case a.provider == "":
		for _, name := range providers.List() {
			list, _ := providers.Models(name)
			entries = append(entries, toEntries(name, list)...)
		}
	default:
		var name string
		if name, err = a.selectedProvider(); err == nil {
			var list []core.ModelInfo
			list, err = providers.Models(name)
			entries = toEntries(name, list)
		}
	}
	if err != nil {
		return a.fail(err)
	}

	return a.printModels(entries)
}

func (a *App) remoteModels(ctx context.Context) ([]modelEntry, error) {
	name, err := a.selectedProvider()
	if err != nil {
		return nil, err
	}

	p, err := a.connect(name)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	lister, ok := findLister(p)
	if !ok {
		return nil, exitWithCode(ExitValidation, fmt.Errorf("%s does not support --remote", name))
	}

	if ctx == nil {
		ctx = context.Background()
	}
	list, err := lister.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	return toEntries(name, list), nil
}

// findLister looks through decorators for a provider that can list models.
func findLister(p core.Provider) (modelLister, bool) {
	for p != nil {
		if l, ok := p.(modelLister); ok {
			return l, true
		}
		w, ok := p.(core.Wrapper)
		if !ok {
			break
		}
		p = w.Unwrap()
	}
	return nil, false
}

func toEntries(provider string, list []core.ModelInfo) []modelEntry {
	out := make([]modelEntry, 0, len(list))
	for _, m := range list {
		out = append(out, modelEntry{Provider: provider, ID: m.ID, Name: m.String()})
	}
	return out
}

func (a *App) printModels(entries []modelEntry) error {
	if a.jsonOutput {
		if entries == nil {
			entries = []modelEntry{}
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "No models known. Try --remote.")
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROVIDER\tMODEL\tNAME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Provider, e.ID, e.Name)
	}
	return tw.Flush()
}
