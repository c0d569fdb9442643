package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitProvider   = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCodeFor maps an error onto the process exit code.
func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	switch core.KindOf(err) {
	case core.KindInvalidModel, core.KindProvider:
		return ExitValidation
	case core.KindTransport:
		return ExitNetwork
	default:
		return ExitProvider
	}
}

// errorType names the error in JSON output.
func errorType(err error) string {
	if kind := core.KindOf(err); kind != "" {
		return string(kind)
	}
	if exitCodeFor(err) == ExitValidation {
		return "validation"
	}
	return "error"
}

// fail reports err on stderr and returns it with its exit code.
func (a *App) fail(err error) error {
	a.printError(err)
	return exitWithCode(exitCodeFor(err), err)
}

func (a *App) printError(err error) {
	var e *core.Error
	hasCore := errors.As(err, &e)

	if a.jsonOutput {
		body := map[string]any{
			"type":    errorType(err),
			"message": err.Error(),
		}
		if hasCore {
			if e.Provider != "" {
				body["provider"] = e.Provider
			}
			if e.Status != 0 {
				body["status"] = e.Status
			}
			if e.Code != "" {
				body["code"] = e.Code
			}
			if e.RequestID != "" {
				body["request_id"] = e.RequestID
			}
		}
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"error": body})
		return
	}

	color.New(color.FgRed, color.Bold).Fprint(a.stderr, "Error: ")
	fmt.Fprintln(a.stderr, err.Error())
	if hasCore && e.RequestID != "" {
		color.New(color.Faint).Fprintf(a.stderr, "  Provider: %s, Request ID: %s\n", e.Provider, e.RequestID)
	}
}
