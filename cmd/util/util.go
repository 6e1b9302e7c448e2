// Package util contains helpers shared by the command implementations.
package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/oxbowhq/oxbow-cli/pkg/errors"
	"github.com/oxbowhq/oxbow-cli/pkg/term"
)

// RootFlags holds the global flags shared by every subcommand.
type RootFlags struct {
	// Profile selects the connection profile in ~/.oxbow.yaml.
	Profile string

	// Debug enables printing the full error trace on failure.
	Debug bool
}

// Mocked out for unit tests.
var (
	exit            = os.Exit
	stdin io.Reader = os.Stdin
)

// HandleFatalError reports the error that's ending the run and exits with
// status 1. Every command failure funnels through here exactly once. With
// debugMode set, the full error chain is printed before the summary line.
func HandleFatalError(err error, debugMode bool) {
	if debugMode {
		// The wrapping contexts are the closest thing we have to a trace.
		term.Echo("%v", err)
	}
	term.Echo("Error: %s", errors.GetPrintableMessage(err))
	exit(1)
}

// HandlePanic prints any panic escaping the CLI along with its stack before
// exiting. It's deferred from main so that crashes still produce a readable
// report.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	term.Echo("The CLI crashed: %v\n%s", r, debug.Stack())
	exit(1)
}

// PromptYesOrNo asks the user the given yes or no question, and returns
// their answer. Unrecognized responses re-prompt; an empty response means
// no.
func PromptYesOrNo(question string) (bool, error) {
	reader := bufio.NewReader(stdin)
	for {
		fmt.Fprintf(term.Stdout, "%s (y/N) ", question)

		response, err := reader.ReadString('\n')
		if err != nil {
			return false, errors.WithContext(err, "read response")
		}

		switch strings.ToLower(strings.TrimSpace(response)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
	}
}
