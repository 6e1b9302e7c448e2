// Package workspace implements the `oxbow workspace` command group, which
// exposes the individual workspace operations for scripting and one-off use.
package workspace

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/oxbowhq/oxbow-cli/cmd/util"
	"github.com/oxbowhq/oxbow-cli/pkg/config"
	"github.com/oxbowhq/oxbow-cli/pkg/errors"
	"github.com/oxbowhq/oxbow-cli/pkg/term"
	ws "github.com/oxbowhq/oxbow-cli/pkg/workspace"
)

// Mocked out for unit tests.
var (
	fs           = afero.NewOsFs()
	parseProfile = config.ParseProfile
)

// New creates the `workspace` command group.
func New(flags *util.RootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Work with individual objects in the workspace.",
	}
	cmd.AddCommand(
		newLs(flags),
		newMkdirs(flags),
		newExport(flags),
		newImport(flags),
		newExportDir(flags),
		newImportDir(flags),
		newRm(flags),
	)
	return cmd
}

func newLs(flags *util.RootFlags) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "ls PATH",
		Short: "List the objects in a workspace folder.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(flags.Profile)
			if err != nil {
				return err
			}
			return ls(client, args[0], long)
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false,
		"Print the object type and language along with each name.")
	return cmd
}

func ls(client *ws.Client, path string, long bool) error {
	objects, err := client.List(path)
	if err != nil {
		return err
	}

	if !long {
		for _, object := range objects {
			term.Echo("%s", object.Basename())
		}
		return nil
	}

	w := tabwriter.NewWriter(term.Stdout, 0, 8, 2, ' ', 0)
	for _, object := range objects {
		line := []string{
			string(object.ObjectType), string(object.Language), object.Path,
		}
		if _, err := w.Write([]byte(strings.Join(line, "\t") + "\n")); err != nil {
			return errors.WithContext(err, "write listing")
		}
	}
	return w.Flush()
}

func newMkdirs(flags *util.RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdirs PATH",
		Short: "Create a workspace folder, along with any missing parents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(flags.Profile)
			if err != nil {
				return err
			}
			return client.Mkdirs(args[0])
		},
	}
}

func newExport(flags *util.RootFlags) *cobra.Command {
	var format string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "export SOURCE TARGET",
		Short: "Download a workspace object to a local file.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(flags.Profile)
			if err != nil {
				return err
			}
			return export(client, args[0], args[1],
				ws.ExportFormat(strings.ToUpper(format)), overwrite)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(ws.Source),
		"The format to export in: SOURCE, HTML, JUPYTER, or DBC.")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false,
		"Replace the local file if it already exists.")
	return cmd
}

func export(client *ws.Client, source, target string, format ws.ExportFormat,
	overwrite bool) error {
	if !overwrite {
		exists, err := afero.Exists(fs, target)
		if err != nil {
			return errors.WithContext(err, "check local file")
		}
		if exists {
			return errors.LocalFileExists{Path: target}
		}
	}

	content, err := client.Export(source, format)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, target, content, 0644); err != nil {
		return errors.WithContext(err, "write local file")
	}
	return nil
}

func newImport(flags *util.RootFlags) *cobra.Command {
	var language, format string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "import SOURCE TARGET",
		Short: "Upload a local file as a workspace object.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(flags.Profile)
			if err != nil {
				return err
			}
			return importFile(client, args[0], args[1],
				ws.Language(strings.ToUpper(language)),
				ws.ExportFormat(strings.ToUpper(format)), overwrite)
		},
	}
	cmd.Flags().StringVar(&language, "language", "",
		"The notebook's language: SCALA, PYTHON, SQL, or R. "+
			"Defaults to the language matching the source file's extension.")
	cmd.Flags().StringVar(&format, "format", string(ws.Source),
		"The format of the source file: SOURCE, HTML, JUPYTER, or DBC.")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false,
		"Replace the workspace object if it already exists.")
	return cmd
}

func importFile(client *ws.Client, source, target string, language ws.Language,
	format ws.ExportFormat, overwrite bool) error {
	if language == "" && format == ws.Source {
		inferred, ok := ws.LanguageForPath(source)
		if !ok {
			return errors.New("%q does not have a valid extension of %s. "+
				"Pass --language to import it anyway", source,
				strings.Join(ws.Extensions(), ", "))
		}
		language = inferred
	}

	content, err := afero.ReadFile(fs, source)
	if err != nil {
		return errors.WithContext(err, "read local file")
	}
	return client.Import(target, language, format, content, overwrite)
}

func newExportDir(flags *util.RootFlags) *cobra.Command {
	var overwrite, verbose bool
	cmd := &cobra.Command{
		Use:   "export-dir SOURCE TARGET",
		Short: "Download a workspace folder tree into a local directory.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(flags.Profile)
			if err != nil {
				return err
			}
			return client.ExportDir(args[0], args[1], overwrite, verbose)
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false,
		"Replace local files that already exist.")
	cmd.Flags().BoolVar(&verbose, "verbose", false,
		"Report each notebook as it's transferred.")
	return cmd
}

func newImportDir(flags *util.RootFlags) *cobra.Command {
	var overwrite, excludeHidden, verbose bool
	cmd := &cobra.Command{
		Use:   "import-dir SOURCE TARGET",
		Short: "Upload a local directory tree into a workspace folder.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(flags.Profile)
			if err != nil {
				return err
			}
			return client.ImportDir(args[0], args[1], overwrite, excludeHidden, verbose)
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false,
		"Replace workspace objects that already exist.")
	cmd.Flags().BoolVar(&excludeHidden, "exclude-hidden-files", false,
		"Skip files and directories whose name starts with \".\".")
	cmd.Flags().BoolVar(&verbose, "verbose", false,
		"Report each notebook as it's transferred.")
	return cmd
}

func newRm(flags *util.RootFlags) *cobra.Command {
	var recursive bool
	cmd := &cobra.Command{
		Use:   "rm PATH",
		Short: "Delete a workspace object.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := newClient(flags.Profile)
			if err != nil {
				return err
			}
			return client.Delete(args[0], recursive)
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"Delete a folder along with its contents.")
	return cmd
}

func newClient(profileName string) (*ws.Client, error) {
	profile, err := parseProfile(profileName)
	if err != nil {
		return nil, err
	}
	return ws.NewClient(profile), nil
}
