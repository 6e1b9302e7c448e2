// Package notebooks implements the `oxbow notebooks` command group, which
// mirrors notebook trees between the workspace and a local git repository.
package notebooks

import (
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oxbowhq/oxbow-cli/cmd/util"
	"github.com/oxbowhq/oxbow-cli/pkg/config"
	"github.com/oxbowhq/oxbow-cli/pkg/errors"
	"github.com/oxbowhq/oxbow-cli/pkg/progress"
	"github.com/oxbowhq/oxbow-cli/pkg/repo"
	"github.com/oxbowhq/oxbow-cli/pkg/workspace"
)

// notebooksFolder is the repository subdirectory that mirrors the workspace
// folder.
const notebooksFolder = "notebooks"

// Animation settings for the transfer bar.
const (
	barWidth    = 10
	barFillChar = 'o'
	barInterval = 250 * time.Millisecond
)

// Mocked out for unit tests.
var (
	parseProfile    = config.ParseProfile
	repoPathAndName = repo.PathAndName
)

// New creates the `notebooks` command group.
func New(flags *util.RootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Sync notebooks between the workspace and a local git repo.",
	}
	cmd.AddCommand(newPull(flags), newPush(flags))
	return cmd
}

func newPull(flags *util.RootFlags) *cobra.Command {
	var folder string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull notebooks from the workspace into a local git repo.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return pull(flags.Profile, folder, verbose)
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "",
		"Pull from this workspace folder instead of the default.")
	cmd.Flags().BoolVar(&verbose, "verbose", false,
		"Report each notebook as it's transferred.")
	return cmd
}

func newPush(flags *util.RootFlags) *cobra.Command {
	var folder string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push notebooks from a local git repo into the workspace.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return push(flags.Profile, folder, verbose)
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "",
		"Push to this workspace folder instead of the default.")
	cmd.Flags().BoolVar(&verbose, "verbose", false,
		"Report each notebook as it's transferred.")
	return cmd
}

func pull(profileName, folder string, verbose bool) error {
	profile, local, remote, err := resolve(profileName, folder)
	if err != nil {
		return err
	}

	client := workspace.NewClient(profile)
	work := func() error {
		return client.ExportDir(remote, local, true, verbose)
	}
	if verbose {
		return work()
	}
	return newBar("Pulling from " + remote).Wrap(work)
}

func push(profileName, folder string, verbose bool) error {
	profile, local, remote, err := resolve(profileName, folder)
	if err != nil {
		return err
	}

	client := workspace.NewClient(profile)
	work := func() error {
		return client.ImportDir(local, remote, true, true, verbose)
	}
	if verbose {
		return work()
	}
	return newBar("Pushing to " + remote).Wrap(work)
}

func newBar(message string) *progress.Bar {
	return progress.New(progress.Config{
		Message:  message,
		Width:    barWidth,
		FillChar: barFillChar,
		Interval: barInterval,
	})
}

// resolve returns the connection profile along with the local and remote
// sync roots: {repo root}/notebooks locally, and /Users/{username}/{repo
// name} remotely unless folder overrides it.
func resolve(profileName, folder string) (config.Profile, string, string, error) {
	profile, err := parseProfile(profileName)
	if err != nil {
		return config.Profile{}, "", "", err
	}

	// The derived remote folder lives under the user's home folder, so a
	// username is required even when authenticating by token.
	if profile.Username == "" {
		return config.Profile{}, "", "", errors.UnconfiguredProfile{Profile: profileName}
	}

	repoPath, repoName, err := repoPathAndName()
	if err != nil {
		return config.Profile{}, "", "", err
	}

	local := filepath.Join(repoPath, notebooksFolder)
	remote := folder
	if remote == "" {
		remote = path.Join("/Users", profile.Username, repoName)
	}
	return profile, local, remote, nil
}
