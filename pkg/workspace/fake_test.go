package workspace

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxbowhq/oxbow-cli/pkg/api"
	"github.com/oxbowhq/oxbow-cli/pkg/config"
)

// fakeWorkspace is an in-memory workspace service for exercising the client
// against realistic server behavior.
type fakeWorkspace struct {
	t       *testing.T
	objects map[string]ObjectInfo
	content map[string][]byte
}

func newFakeWorkspace(t *testing.T) *fakeWorkspace {
	return &fakeWorkspace{
		t:       t,
		objects: map[string]ObjectInfo{"/": {Path: "/", ObjectType: Directory}},
		content: map[string][]byte{},
	}
}

func (f *fakeWorkspace) addDir(dirPath string) {
	f.objects[dirPath] = ObjectInfo{Path: dirPath, ObjectType: Directory}
}

func (f *fakeWorkspace) addNotebook(nbPath string, language Language, content string) {
	f.objects[nbPath] = ObjectInfo{
		Path:       nbPath,
		ObjectType: Notebook,
		Language:   language,
	}
	f.content[nbPath] = []byte(content)
}

func (f *fakeWorkspace) addLibrary(libPath string) {
	f.objects[libPath] = ObjectInfo{Path: libPath, ObjectType: Library}
}

// start returns a client connected to a server backed by the fake. Callers
// must close the returned server.
func (f *fakeWorkspace) start() (*Client, *httptest.Server) {
	mux := http.NewServeMux()
	mux.HandleFunc(api.Prefix+"/workspace/get-status", f.handleGetStatus)
	mux.HandleFunc(api.Prefix+"/workspace/list", f.handleList)
	mux.HandleFunc(api.Prefix+"/workspace/mkdirs", f.handleMkdirs)
	mux.HandleFunc(api.Prefix+"/workspace/export", f.handleExport)
	mux.HandleFunc(api.Prefix+"/workspace/import", f.handleImport)
	mux.HandleFunc(api.Prefix+"/workspace/delete", f.handleDelete)

	server := httptest.NewServer(mux)
	return NewClient(config.Profile{Host: server.URL, Token: "tok123"}), server
}

func (f *fakeWorkspace) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	object, ok := f.objects[r.URL.Query().Get("path")]
	if !ok {
		f.writeError(w, 404, errCodeDoesNotExist, "path does not exist")
		return
	}
	f.writeJSON(w, object)
}

func (f *fakeWorkspace) handleList(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("path")
	object, ok := f.objects[target]
	if !ok {
		f.writeError(w, 404, errCodeDoesNotExist, "path does not exist")
		return
	}

	objects := []ObjectInfo{}
	if !object.IsDir() {
		objects = append(objects, object)
	} else {
		for objectPath, child := range f.objects {
			if objectPath != "/" && path.Dir(objectPath) == target {
				objects = append(objects, child)
			}
		}
	}
	f.writeJSON(w, map[string][]ObjectInfo{"objects": objects})
}

func (f *fakeWorkspace) handleMkdirs(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Path string `json:"path"`
	}
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&payload))

	if existing, ok := f.objects[payload.Path]; ok && !existing.IsDir() {
		f.writeError(w, 400, errCodeAlreadyExists, "a notebook is in the way")
		return
	}

	for dir := payload.Path; dir != "/" && dir != "."; dir = path.Dir(dir) {
		f.addDir(dir)
	}
	f.writeJSON(w, struct{}{})
}

func (f *fakeWorkspace) handleExport(w http.ResponseWriter, r *http.Request) {
	content, ok := f.content[r.URL.Query().Get("path")]
	if !ok {
		f.writeError(w, 404, errCodeDoesNotExist, "path does not exist")
		return
	}
	f.writeJSON(w, map[string]string{
		"content": base64.StdEncoding.EncodeToString(content),
	})
}

func (f *fakeWorkspace) handleImport(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Path      string       `json:"path"`
		Language  Language     `json:"language"`
		Format    ExportFormat `json:"format"`
		Content   string       `json:"content"`
		Overwrite bool         `json:"overwrite"`
	}
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&payload))

	if _, ok := f.objects[payload.Path]; ok && !payload.Overwrite {
		f.writeError(w, 400, errCodeAlreadyExists, "path already exists")
		return
	}

	content, err := base64.StdEncoding.DecodeString(payload.Content)
	assert.NoError(f.t, err)

	f.objects[payload.Path] = ObjectInfo{
		Path:       payload.Path,
		ObjectType: Notebook,
		Language:   payload.Language,
	}
	f.content[payload.Path] = content
	f.writeJSON(w, struct{}{})
}

func (f *fakeWorkspace) handleDelete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Path      string `json:"path"`
		Recursive bool   `json:"recursive"`
	}
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&payload))

	object, ok := f.objects[payload.Path]
	if !ok {
		f.writeError(w, 404, errCodeDoesNotExist, "path does not exist")
		return
	}

	if object.IsDir() && !payload.Recursive {
		for child := range f.objects {
			if path.Dir(child) == payload.Path {
				f.writeError(w, 400, "DIRECTORY_NOT_EMPTY", "directory is not empty")
				return
			}
		}
	}

	for objectPath := range f.objects {
		if objectPath == payload.Path || strings.HasPrefix(objectPath, payload.Path+"/") {
			delete(f.objects, objectPath)
			delete(f.content, objectPath)
		}
	}
	f.writeJSON(w, struct{}{})
}

func (f *fakeWorkspace) writeJSON(w http.ResponseWriter, body interface{}) {
	assert.NoError(f.t, json.NewEncoder(w).Encode(body))
}

func (f *fakeWorkspace) writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	f.writeJSON(w, map[string]string{"error_code": code, "message": message})
}
