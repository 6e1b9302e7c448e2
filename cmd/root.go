package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oxbowhq/oxbow-cli/cmd/configure"
	"github.com/oxbowhq/oxbow-cli/cmd/notebooks"
	"github.com/oxbowhq/oxbow-cli/cmd/upgradecli"
	"github.com/oxbowhq/oxbow-cli/cmd/util"
	"github.com/oxbowhq/oxbow-cli/cmd/version"
	workspaceCmd "github.com/oxbowhq/oxbow-cli/cmd/workspace"
	"github.com/oxbowhq/oxbow-cli/pkg/config"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "OXBOW_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	var flags util.RootFlags
	rootCmd := &cobra.Command{
		Use:          "oxbow",
		Short:        "Manage an Oxbow workspace from the command line.",
		SilenceUsage: true,

		// Errors are reported by HandleFatalError below, so we silence them
		// here to avoid double printing.
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.Profile, "profile", config.DefaultProfile,
		"The connection profile to use.")
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false,
		"Print the full error trace on failure.")

	rootCmd.AddCommand(
		configure.New(&flags),
		notebooks.New(&flags),
		upgradecli.New(),
		version.New(),
		workspaceCmd.New(&flags),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err, flags.Debug)
	}
}
