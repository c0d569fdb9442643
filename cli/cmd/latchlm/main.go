// Command latchlm sends prompts to LLM providers from the command line.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/latchlm/latchlm/cli/commands"
)

// ExitCoder is an interface for errors that have an exit code.
type ExitCoder interface {
	ExitCode() int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.NewApp().ExecuteContext(ctx)
	stop()

	if err != nil {
		var ec ExitCoder
		if errors.As(err, &ec) {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}
