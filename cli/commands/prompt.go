package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/latchlm/latchlm/core"
)

func (a *App) newPromptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [text...]",
		Short: "Send a prompt to a model",
		Long: `Send a prompt to a model and print the answer.

The prompt is taken from the arguments, or from stdin when no argument or
a single "-" is given.

Examples:
  latchlm prompt -p gemini -m gemini-2.5-flash "Explain goroutines"
  latchlm prompt --stream "Write a haiku about Go"
  echo "Summarize this" | latchlm prompt --json -`,
		RunE: a.runPrompt,
	}

	cmd.Flags().BoolVar(&a.promptStream, "stream", false, "print the answer as it is generated")
	cmd.Flags().BoolVar(&a.promptRender, "render", false, "render the answer as markdown")
	cmd.Flags().DurationVar(&a.promptTimeout, "timeout", 0, "abort the call after this duration (0 = no limit)")

	return cmd
}

// promptResult is the --json output of the prompt command.
type promptResult struct {
	Provider string          `json:"provider"`
	Model    string          `json:"model"`
	Text     string          `json:"text"`
	Usage    core.TokenUsage `json:"usage"`
}

func (a *App) runPrompt(cmd *cobra.Command, args []string) error {
	text, err := a.readPrompt(args)
	if err != nil {
		return a.fail(err)
	}

	p, model, err := a.openProvider()
	if err != nil {
		return a.fail(err)
	}
	defer p.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.promptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.promptTimeout)
		defer cancel()
	}

	req := core.NewRequest(text)

	var resp *core.Response
	if a.promptStream {
		resp, err = a.streamPrompt(ctx, p, model, req)
	} else {
		resp, err = p.SendRequest(ctx, model, req)
	}
	if err != nil {
		return a.fail(err)
	}

	if !resp.Usage.IsZero() {
		a.logger.Debug().Str("usage", resp.Usage.String()).Msg("token usage")
	}
	return a.printAnswer(p, model, resp)
}

// readPrompt joins the arguments, or reads stdin for none or "-".
func (a *App) readPrompt(args []string) (string, error) {
	var text string
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", exitWithCode(ExitValidation, fmt.Errorf("read prompt: %w", err))
		}
		text = string(data)
	} else {
		text = strings.Join(args, " ")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", exitWithCode(ExitValidation, errors.New("prompt cannot be empty"))
	}
	return text, nil
}

// streamPrompt prints fragments as they arrive unless the answer is
// post-processed (--json or --render), and stops at the first failure.
func (a *App) streamPrompt(ctx context.Context, p core.Provider, model core.Model, req core.Request) (*core.Response, error) {
	stream := p.SendStreaming(ctx, model, req)
	if a.jsonOutput || a.promptRender {
		return stream.Collect()
	}

	var text strings.Builder
	out := &core.Response{}
	for frag, err := range stream.Iter() {
		if err != nil {
			fmt.Fprintln(a.stdout)
			out.Text = text.String()
			return out, err
		}
		fmt.Fprint(a.stdout, frag.Text)
		text.WriteString(frag.Text)
		if frag.Model != "" {
			out.Model = frag.Model
		}
		if !frag.Usage.IsZero() {
			out.Usage = frag.Usage
		}
	}
	fmt.Fprintln(a.stdout)

	out.Text = text.String()
	return out, nil
}

func (a *App) printAnswer(p core.Provider, model core.Model, resp *core.Response) error {
	switch {
	case a.jsonOutput:
		res := promptResult{
			Provider: core.ProviderName(p),
			Model:    resp.Model,
			Text:     resp.Text,
			Usage:    resp.Usage,
		}
		if res.Model == "" {
			res.Model = model.ID()
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)

	case a.promptRender:
		out, err := renderMarkdown(resp.Text)
		if err != nil {
			return a.fail(exitWithCode(ExitValidation, fmt.Errorf("render markdown: %w", err)))
		}
		fmt.Fprint(a.stdout, out)
		return nil

	case a.promptStream:
		// Already printed while streaming.
		return nil

	default:
		fmt.Fprintln(a.stdout, resp.Text)
		return nil
	}
}

func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
