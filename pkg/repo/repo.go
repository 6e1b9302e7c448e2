// Package repo locates the git repository the CLI was invoked from. Notebook
// paths are derived from the repository root rather than the working
// directory, so commands behave the same anywhere inside the checkout.
package repo

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oxbowhq/oxbow-cli/pkg/errors"
)

// Mocked out for unit tests.
var (
	commandOutput = (*exec.Cmd).Output
	getwd         = os.Getwd
)

// PathAndName returns the absolute path to the root of the git repository
// containing the working directory, along with the repository's name (the
// basename of the root).
func PathAndName() (string, string, error) {
	out, err := commandOutput(exec.Command("git", "rev-parse", "--show-toplevel"))
	if err != nil {
		wd, _ := getwd()
		return "", "", errors.NotARepository{Dir: wd}
	}

	path := strings.TrimSpace(string(out))
	return path, filepath.Base(path), nil
}
