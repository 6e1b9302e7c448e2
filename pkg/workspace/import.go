package workspace

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/oxbowhq/oxbow-cli/pkg/errors"
	"github.com/oxbowhq/oxbow-cli/pkg/term"
)

// ImportDir uploads the local directory tree into the workspace under
// remote, creating workspace folders as needed. Files whose extension maps
// to a notebook language import as SOURCE notebooks under their
// extension-less name; other files are skipped with a note. When overwrite
// is unset, notebooks that already exist remotely are skipped rather than
// replaced. excludeHidden skips entries whose name starts with ".".
// verbose reports each transferred notebook.
func (c *Client) ImportDir(local, remote string, overwrite, excludeHidden, verbose bool) error {
	exists, err := afero.Exists(fs, local)
	if err != nil {
		return errors.WithContext(err, "check local directory")
	}
	if !exists {
		return errors.FileNotFound{Path: local}
	}
	return c.importDir(local, remote, overwrite, excludeHidden, verbose)
}

func (c *Client) importDir(local, remote string, overwrite, excludeHidden, verbose bool) error {
	if err := c.Mkdirs(remote); err != nil {
		return err
	}

	// afero.ReadDir sorts by filename, so the traversal is deterministic.
	entries, err := afero.ReadDir(fs, local)
	if err != nil {
		return errors.WithContext(err, "read local directory")
	}

	for _, entry := range entries {
		if excludeHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		src := filepath.Join(local, entry.Name())
		dst := path.Join(remote, entry.Name())

		var err error
		if entry.IsDir() {
			err = c.importDir(src, dst, overwrite, excludeHidden, verbose)
		} else {
			err = c.importNotebook(src, dst, overwrite, verbose)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) importNotebook(src, dst string, overwrite, verbose bool) error {
	language, ok := LanguageForPath(src)
	if !ok {
		term.Echo("%s does not have a valid extension of %s. Skipping.",
			src, strings.Join(Extensions(), ", "))
		return nil
	}

	content, err := afero.ReadFile(fs, src)
	if err != nil {
		return errors.WithContext(err, "read local file")
	}

	// The workspace path is the local name without its extension.
	dst = strings.TrimSuffix(dst, path.Ext(dst))
	if err := c.Import(dst, language, Source, content, overwrite); err != nil {
		if _, ok := errors.RootCause(err).(errors.RemoteAlreadyExists); ok {
			term.Echo("%s already exists remotely as %s. Skipping.", src, dst)
			return nil
		}
		return err
	}

	if verbose {
		term.Echo("%s -> %s", src, dst)
	}
	return nil
}
