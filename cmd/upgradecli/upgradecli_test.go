package upgradecli

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxbowhq/oxbow-cli/pkg/term"
	"github.com/oxbowhq/oxbow-cli/pkg/version"
)

func TestGetLatestRelease(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write([]byte(`{"version": "1.4.0", "url": "https://update.oxbow.io/oxbow-1.4.0.tar.gz"}`))
		assert.NoError(t, err)
	}))
	defer ts.Close()

	endpoint = ts.URL
	latest, err := getLatestRelease()
	assert.NoError(t, err)
	assert.Equal(t, release{
		Version: "1.4.0",
		URL:     "https://update.oxbow.io/oxbow-1.4.0.tar.gz",
	}, latest)
}

func TestGetLatestReleaseMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, err := w.Write([]byte(`{}`))
		assert.NoError(t, err)
	}))
	defer ts.Close()

	endpoint = ts.URL
	_, err := getLatestRelease()
	assert.Error(t, err)
}

func TestDownloadRelease(t *testing.T) {
	binary := []byte("not a real binary\n")
	archive := makeArchive(t, map[string][]byte{
		"README": []byte("docs\n"),
		"oxbow":  binary,
	})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/x-gzip")
		_, err := w.Write(archive)
		assert.NoError(t, err)
	}))
	defer ts.Close()

	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	require.NoError(t, downloadRelease(ts.URL))

	wd, err := os.Getwd()
	require.NoError(t, err)
	contents, err := afero.ReadFile(fs, filepath.Join(wd, "oxbow"))
	assert.NoError(t, err)
	assert.Equal(t, binary, contents)
}

func TestDownloadReleaseWrongContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, err := w.Write([]byte("<html>not found</html>"))
		assert.NoError(t, err)
	}))
	defer ts.Close()

	err := downloadRelease(ts.URL)
	assert.Error(t, err)
}

// TestPromptShouldInstallNoUpdate covers the decisions that don't prompt.
func TestPromptShouldInstallNoUpdate(t *testing.T) {
	tests := []struct {
		name          string
		ownVersion    string
		remoteVersion string
		expOutput     string
	}{
		{
			name:          "already up to date",
			ownVersion:    "1.4.0",
			remoteVersion: "1.4.0",
			expOutput:     "Your CLI is already up to date.\n",
		},
		{
			name:          "ahead of a prerelease of the same version",
			ownVersion:    "1.4.0",
			remoteVersion: "1.4.0-rc1",
			expOutput: "Your CLI version is ahead of the latest release.\n" +
				"However, there is no update since you are on the stable release.\n",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			version.Version = test.ownVersion
			defer func() { version.Version = version.EmptyValue }()

			out := bytes.NewBuffer(nil)
			term.Stdout = out
			defer func() { term.Stdout = os.Stdout }()

			_, shouldInstall, err := promptShouldInstall(test.remoteVersion)
			assert.NoError(t, err)
			assert.False(t, shouldInstall)
			assert.Equal(t, test.expOutput, out.String())
		})
	}
}

func makeArchive(t *testing.T, files map[string][]byte) []byte {
	buf := bytes.NewBuffer(nil)
	gzw := gzip.NewWriter(buf)
	tw := tar.NewWriter(gzw)
	for name, contents := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0755,
			Size:     int64(len(contents)),
		}))
		_, err := tw.Write(contents)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gzw.Close())
	return buf.Bytes()
}
