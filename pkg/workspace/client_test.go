package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxbowhq/oxbow-cli/pkg/errors"
)

func TestGetStatus(t *testing.T) {
	remote := newFakeWorkspace(t)
	remote.addDir("/Users/alice")
	client, server := remote.start()
	defer server.Close()

	info, err := client.GetStatus("/Users/alice")
	assert.NoError(t, err)
	assert.Equal(t, ObjectInfo{Path: "/Users/alice", ObjectType: Directory}, info)

	_, err = client.GetStatus("/Users/bob")
	assert.Equal(t, errors.RemoteNotFound{Path: "/Users/bob"}, err)
}

func TestListNotebook(t *testing.T) {
	remote := newFakeWorkspace(t)
	remote.addNotebook("/nb1", Python, "print(1)\n")
	client, server := remote.start()
	defer server.Close()

	// Listing a notebook returns the notebook itself.
	objects, err := client.List("/nb1")
	assert.NoError(t, err)
	assert.Equal(t, []ObjectInfo{
		{Path: "/nb1", ObjectType: Notebook, Language: Python},
	}, objects)

	_, err = client.List("/nb2")
	assert.Equal(t, errors.RemoteNotFound{Path: "/nb2"}, err)
}

func TestExportRoundtrip(t *testing.T) {
	remote := newFakeWorkspace(t)
	client, server := remote.start()
	defer server.Close()

	content := []byte("val x = 1\n")
	assert.NoError(t, client.Import("/nb1", Scala, Source, content, false))

	exported, err := client.Export("/nb1", Source)
	assert.NoError(t, err)
	assert.Equal(t, content, exported)

	// A second import without overwrite is rejected.
	err = client.Import("/nb1", Scala, Source, content, false)
	assert.Equal(t, errors.RemoteAlreadyExists{Path: "/nb1"}, err)

	// With overwrite it goes through.
	assert.NoError(t, client.Import("/nb1", Scala, Source, []byte("val x = 2\n"), true))
	exported, err = client.Export("/nb1", Source)
	assert.NoError(t, err)
	assert.Equal(t, []byte("val x = 2\n"), exported)
}

func TestDelete(t *testing.T) {
	remote := newFakeWorkspace(t)
	remote.addDir("/dir")
	remote.addNotebook("/dir/nb1", Python, "print(1)\n")
	client, server := remote.start()
	defer server.Close()

	err := client.Delete("/dir", false)
	assert.Equal(t, errors.APIError{
		StatusCode: 400,
		Code:       "DIRECTORY_NOT_EMPTY",
		Message:    "directory is not empty",
	}, err)

	assert.NoError(t, client.Delete("/dir", true))
	_, err = client.GetStatus("/dir/nb1")
	assert.Equal(t, errors.RemoteNotFound{Path: "/dir/nb1"}, err)

	err = client.Delete("/dir", false)
	assert.Equal(t, errors.RemoteNotFound{Path: "/dir"}, err)
}
