package upgradecli

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/oxbowhq/oxbow-cli/cmd/util"
	"github.com/oxbowhq/oxbow-cli/pkg/errors"
	"github.com/oxbowhq/oxbow-cli/pkg/progress"
	"github.com/oxbowhq/oxbow-cli/pkg/term"
	"github.com/oxbowhq/oxbow-cli/pkg/version"
)

// binaryName is the name of the released binary inside the tar archive.
const binaryName = "oxbow"

var (
	// endpoint describes the latest release. Tests point it at a fake server.
	endpoint = "https://update.oxbow.io/latest.json"
	fs       = afero.NewOsFs()
)

// release is the JSON document served by the release endpoint.
type release struct {
	Version string `json:"version"`
	URL     string `json:"url"`
}

// New creates a new `upgrade-cli` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade-cli",
		Short: "Upgrade the local CLI binary to the latest release.",
		Long: "Upgrade the local Oxbow CLI binary to the latest release. " +
			"Also allows the CLI to be downgraded if the released version " +
			"is lower.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}
}

func run() error {
	latest, err := getLatestRelease()
	if err != nil {
		return errors.WithContext(err, "check for updates")
	}

	term.Echo("Your Oxbow CLI is at version: %s", version.Version)
	term.Echo("The latest release is at version: %s\n", latest.Version)

	targetVersion, shouldInstall, err := promptShouldInstall(latest.Version)
	if err != nil {
		return errors.WithContext(err, "prompt")
	} else if !shouldInstall {
		return nil
	}

	bar := progress.New(progress.Config{
		Message: fmt.Sprintf("Downloading Oxbow release: %s", targetVersion),
	})
	if err := bar.Wrap(func() error { return downloadRelease(latest.URL) }); err != nil {
		return errors.WithContext(err, "download release")
	}
	term.Echo("Release successfully downloaded.\n")

	installedPath, err := getInstalledPath()
	if err != nil {
		return errors.WithContext(err, "get installed path")
	}

	term.Echo("The new binary has been downloaded to the current working "+
		"directory.\n"+
		"Please execute the following command in your shell to install it:\n\n"+
		"\t cp ./%s %s \n", binaryName, installedPath)
	return nil
}

func getLatestRelease() (release, error) {
	resp, err := http.Get(endpoint)
	if err != nil {
		return release{}, errors.WithContext(err, "get")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return release{}, errors.New("server responded with %s", resp.Status)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return release{}, errors.WithContext(err, "read response")
	}

	var latest release
	if err := json.Unmarshal(body, &latest); err != nil {
		return release{}, errors.WithContext(err, "parse response")
	}
	if latest.Version == "" || latest.URL == "" {
		return release{}, errors.New("malformed release document")
	}
	return latest, nil
}

func promptShouldInstall(remoteVersionStr string) (*goversion.Version, bool, error) {
	ownVersion, err := goversion.NewVersion(version.Version)
	if err != nil {
		return nil, false, errors.WithContext(err, "parse version")
	}

	remoteVersion, err := goversion.NewVersion(remoteVersionStr)
	if err != nil {
		return nil, false, errors.WithContext(err, "parse release version")
	}

	if ownVersion.Equal(remoteVersion) {
		term.Echo("Your CLI is already up to date.")
		return nil, false, nil
	}

	// Strip all metadata and prerelease information as we cannot download
	// those. This also allows the CLI to upgrade to stable from a prerelease.
	segments := remoteVersion.Segments()
	targetVersion, _ := goversion.NewVersion(fmt.Sprintf("%d.%d.%d",
		segments[0], segments[1], segments[2]))

	var verb string
	if ownVersion.LessThan(remoteVersion) {
		term.Echo("Your CLI version is behind the latest release.")
		verb = "upgrade"
	} else {
		term.Echo("Your CLI version is ahead of the latest release.")

		// This check is so developers (-dev-.*) aren't prompted to downgrade
		// to the exact same version when the release is a prerelease.
		if ownVersion.Equal(targetVersion) {
			term.Echo("However, there is no update since you are on the stable release.")
			return nil, false, nil
		}
		verb = "downgrade"
	}

	doInstall, err := util.PromptYesOrNo(fmt.Sprintf(
		"Would you like to %s to release %s?", verb, targetVersion))
	if err != nil {
		return nil, false, errors.WithContext(err, "prompt")
	}
	return targetVersion, doInstall, nil
}

// downloadRelease downloads the release archive and extracts the binary into
// the current working directory.
func downloadRelease(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return errors.WithContext(err, "get")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("server responded with %s", resp.Status)
	}

	ctype := resp.Header.Get("Content-Type")
	if ctype != "application/x-gzip" && ctype != "application/gzip" {
		return errors.New("incorrect content-type: %s", ctype)
	}

	if err := extractRelease(resp.Body); err != nil {
		return errors.WithContext(err, "extract file")
	}
	return nil
}

// extractRelease takes a .tar.gz Reader, and extracts the released binary to
// the current working directory.
func extractRelease(src io.Reader) error {
	gzr, err := gzip.NewReader(src)
	if err != nil {
		return errors.WithContext(err, "new gzip reader")
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)

	// Search for a header for a file with the binary's name in the archive.
	var header *tar.Header
	for {
		header, err = tr.Next()

		switch {
		case err == io.EOF:
			return errors.WithContext(err, "find binary in tar")
		case err != nil:
			return errors.WithContext(err, "read tar header")
		case header == nil:
			continue
		}

		if header.Typeflag == tar.TypeReg && header.Name == binaryName {
			break
		}
	}

	dir, err := os.Getwd()
	if err != nil {
		return errors.WithContext(err, "get working dir")
	}

	dst := filepath.Join(dir, binaryName)
	file, err := fs.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		os.FileMode(header.Mode))
	if err != nil {
		return errors.WithContext(err, "create path")
	}
	defer file.Close()

	if _, err := io.Copy(file, tr); err != nil {
		return errors.WithContext(err, "io copy")
	}
	return nil
}

func getInstalledPath() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", errors.WithContext(err, "get executable path")
	}

	// Resolve path with symlinks
	path, err = resolveLinks(path)
	if err != nil {
		return "", errors.WithContext(err, "resolve links")
	}
	return path, nil
}

// resolveLinks takes a path and resolves symlinks up to a depth of 5.
func resolveLinks(path string) (string, error) {
	maxDepth := 5

	for i := 0; i < maxDepth; i++ {
		info, err := os.Lstat(path)
		if err != nil {
			return "", errors.WithContext(err, "get lstat")
		}

		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		path, err = os.Readlink(path)
		if err != nil {
			return "", errors.WithContext(err, "follow link")
		}
	}

	return "", errors.New("maximum symlink traversal depth exceeded")
}
