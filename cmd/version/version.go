package version

import (
	"github.com/spf13/cobra"

	"github.com/oxbowhq/oxbow-cli/pkg/term"
	"github.com/oxbowhq/oxbow-cli/pkg/version"
)

// New creates a new `version` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the Oxbow CLI.",
		Run: func(_ *cobra.Command, _ []string) {
			term.Echo("oxbow version %s", version.Version)
		},
	}
}
