// Package configure implements the `oxbow configure` command, which
// interactively sets up a connection profile.
package configure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oxbowhq/oxbow-cli/cmd/util"
	"github.com/oxbowhq/oxbow-cli/pkg/config"
	"github.com/oxbowhq/oxbow-cli/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout         io.Writer = os.Stdout
	stdin          io.Reader = os.Stdin
	guessDefaults            = guessDefaultsImpl
	parseProfile             = config.ParseProfile
	getCurrentUser           = user.Current
)

// New creates a new `configure` command.
func New(flags *util.RootFlags) *cobra.Command {
	var cliOpts config.Profile
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Set up a connection profile for the Oxbow workspace.",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := setupProfile(flags.Profile, cliOpts); err != nil {
				return errors.NewFriendlyError(
					"Failed to set up configuration:\n%s", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cliOpts.Host, "host", "",
		"Set the workspace URL in the profile. "+
			"Optional: If not set, `oxbow configure` will interactively prompt.")
	cmd.Flags().StringVar(&cliOpts.Username, "username", "",
		"Set the username in the profile. "+
			"Optional: If not set, `oxbow configure` will interactively prompt.")
	cmd.Flags().StringVar(&cliOpts.Token, "token", "",
		"Set the access token in the profile. "+
			"Optional: If not set, `oxbow configure` will interactively prompt.")
	return cmd
}

func setupProfile(name string, cliOpts config.Profile) error {
	profile, err := generateProfile(name, cliOpts)
	if err != nil {
		return errors.WithContext(err, "generate profile")
	}

	if err := config.WriteProfile(name, profile); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return errors.WithContext(err, "get config path")
	}

	fmt.Fprintf(stdout, "Wrote profile %s to %s\n", name, path)
	return nil
}

func hostValidationFn(host string) (string, bool) {
	if strings.HasPrefix(host, "https://") || strings.HasPrefix(host, "http://") {
		return "", true
	}
	return "The workspace URL must start with https:// (or http://). " +
		"Please enter the full URL, e.g. https://workspace.oxbow.io.", false
}

type prompt struct {
	helpString, prompt, defaultAnswer, currAnswer string
	field                                         *string
	validationFn                                  func(string) (string, bool)
}

// generateProfile interacts with the user to decide what the profile's
// connection settings should be. It makes best guesses at reasonable
// defaults, and allows users to explicitly override them if desired.
func generateProfile(name string, cliOpts config.Profile) (config.Profile, error) {
	defaults := guessDefaults()
	currProfile, err := parseProfile(name)
	if err != nil {
		currProfile = config.Profile{}
		log.WithError(err).Debug("Failed to read current profile")
	}

	profile := cliOpts
	var prompts []prompt
	if cliOpts.Host == "" {
		prompts = append(prompts, prompt{
			helpString: "Enter the URL of the Oxbow workspace,\n" +
				"e.g. https://workspace.oxbow.io.",
			prompt:       "Workspace URL",
			currAnswer:   currProfile.Host,
			field:        &profile.Host,
			validationFn: hostValidationFn,
		})
	}

	if cliOpts.Username == "" {
		prompts = append(prompts, prompt{
			helpString: "Enter the username you log in to the workspace with.\n" +
				"Notebooks sync to your home folder based on this username.",
			prompt:        "Username",
			defaultAnswer: defaults.Username,
			currAnswer:    currProfile.Username,
			field:         &profile.Username,
		})
	}

	if cliOpts.Token == "" {
		prompts = append(prompts, prompt{
			helpString: "Enter an access token generated from the workspace's\n" +
				"user settings page.",
			prompt:     "Access token",
			currAnswer: currProfile.Token,
			field:      &profile.Token,
		})
	}

	for _, prompt := range prompts {
		var resp string
		for {
			resp, err = promptUser(prompt.helpString, prompt.prompt,
				prompt.defaultAnswer, prompt.currAnswer)
			if err != nil {
				return config.Profile{}, errors.WithContext(err, "read response")
			}

			if prompt.validationFn == nil {
				break
			}

			validationErr, ok := prompt.validationFn(resp)
			if ok {
				break
			}

			fmt.Fprintln(stdout, validationErr)
		}

		*prompt.field = resp
	}

	return profile, nil
}

// guessDefaults tries to guess reasonable defaults for the fields in the
// profile.
func guessDefaultsImpl() (profile config.Profile) {
	if user, err := getCurrentUser(); err == nil {
		profile.Username = user.Username
	} else {
		log.WithError(err).Info("Failed to guess username")
	}
	return profile
}

func promptUser(helpString, prompt, defaultAnswer, currAnswer string) (string, error) {
	// Display a new line at the end to separate different fields to make it
	// look clearer.
	defer fmt.Fprintln(stdout)

	options := []string{}
	if defaultAnswer != "" {
		options = append(options, defaultAnswer)
	}
	if currAnswer != "" && currAnswer != defaultAnswer {
		options = append(options, currAnswer)
	}
	options = append(options, "(Enter manually)")

	fmt.Fprintln(stdout, helpString+"\n"+prompt+":")

	stdinReader := bufio.NewReader(stdin)

	if nOptions := len(options); nOptions > 1 {
		// defaultAnswer or currAnswer exists.
		fmt.Fprintln(stdout)
		for i, option := range options {
			if i == 0 {
				option = fmt.Sprintf("%s (recommended)", option)
			}
			fmt.Fprintf(stdout, "\t%d. %s\n", i+1, option)
		}
		fmt.Fprintln(stdout)

		for {
			fmt.Fprintf(stdout, "Please choose one [1-%d]: ", nOptions)
			choiceStr, err := stdinReader.ReadString('\n')
			if err != nil {
				return "", err
			}

			var choice int
			choiceStr = strings.TrimRight(choiceStr, "\n")

			// Default to the first choice if user doesn't enter anything.
			if choiceStr == "" {
				choice = 1
			} else {
				choice, err = strconv.Atoi(choiceStr)
				if err != nil || choice < 1 || choice > nOptions {
					// Try again if the input is invalid.
					continue
				}
			}

			if choice == nOptions {
				// Enter manually.
				break
			}

			return options[choice-1], nil
		}
	}

	fmt.Fprint(stdout, "Please enter manually: ")
	resp, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(resp, "\n"), nil
}
