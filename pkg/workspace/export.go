package workspace

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/oxbowhq/oxbow-cli/pkg/errors"
	"github.com/oxbowhq/oxbow-cli/pkg/term"
)

// ExportDir downloads the workspace tree rooted at remote into the local
// directory, creating local directories as needed. Notebooks are exported
// in SOURCE format with their language extension appended. When overwrite
// is unset, notebooks that already exist locally are skipped rather than
// replaced. Objects that are neither folders nor notebooks are always
// skipped with a note. verbose reports each transferred notebook.
func (c *Client) ExportDir(remote, local string, overwrite, verbose bool) error {
	// Surfaces RemoteNotFound before any local directories get created.
	if _, err := c.GetStatus(remote); err != nil {
		return err
	}
	return c.exportDir(remote, local, overwrite, verbose)
}

func (c *Client) exportDir(remote, local string, overwrite, verbose bool) error {
	if err := fs.MkdirAll(local, 0755); err != nil {
		return errors.WithContext(err, "create local directory")
	}

	objects, err := c.List(remote)
	if err != nil {
		return err
	}

	// The server doesn't guarantee an ordering, so sort for a deterministic
	// traversal.
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Path < objects[j].Path
	})

	for _, object := range objects {
		dst := filepath.Join(local, object.Basename())

		var err error
		switch {
		case object.IsDir():
			err = c.exportDir(object.Path, dst, overwrite, verbose)
		case object.IsNotebook():
			err = c.exportNotebook(object, dst, overwrite, verbose)
		default:
			term.Echo("%s is neither a notebook nor a directory. Skipping.",
				object.Path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) exportNotebook(object ObjectInfo, dst string, overwrite, verbose bool) error {
	dst += object.Language.Extension()
	if !overwrite {
		exists, err := afero.Exists(fs, dst)
		if err != nil {
			return errors.WithContext(err, "check local file")
		}
		if exists {
			term.Echo("%s already exists locally as %s. Skipping.",
				object.Path, dst)
			return nil
		}
	}

	content, err := c.Export(object.Path, Source)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, dst, content, 0644); err != nil {
		return errors.WithContext(err, "write local file")
	}

	if verbose {
		term.Echo("%s -> %s", object.Path, dst)
	}
	return nil
}
