package workspace

import (
	"encoding/base64"
	"net/url"

	"github.com/oxbowhq/oxbow-cli/pkg/api"
	"github.com/oxbowhq/oxbow-cli/pkg/config"
	"github.com/oxbowhq/oxbow-cli/pkg/errors"
)

// Error codes returned by the workspace endpoints.
const (
	errCodeDoesNotExist  = "RESOURCE_DOES_NOT_EXIST"
	errCodeAlreadyExists = "RESOURCE_ALREADY_EXISTS"
)

// Client implements the workspace operations of the Oxbow REST API.
type Client struct {
	api *api.Client
}

// NewClient returns a workspace client that connects with the given profile.
func NewClient(profile config.Profile) *Client {
	return &Client{api.NewClient(profile)}
}

// GetStatus returns the metadata of the object at the given workspace path.
func (c *Client) GetStatus(path string) (ObjectInfo, error) {
	var info ObjectInfo
	query := url.Values{"path": []string{path}}
	if err := c.api.Get("/workspace/get-status", query, &info); err != nil {
		return ObjectInfo{}, mapNotFound(err, path)
	}
	return info, nil
}

// List returns the immediate children of the folder at the given workspace
// path. Listing a notebook returns the notebook itself.
func (c *Client) List(path string) ([]ObjectInfo, error) {
	var resp struct {
		Objects []ObjectInfo `json:"objects"`
	}
	query := url.Values{"path": []string{path}}
	if err := c.api.Get("/workspace/list", query, &resp); err != nil {
		return nil, mapNotFound(err, path)
	}
	return resp.Objects, nil
}

// Mkdirs creates the folder at the given workspace path, along with any
// missing parents. Folders that already exist are left alone.
func (c *Client) Mkdirs(path string) error {
	payload := map[string]string{"path": path}
	return c.api.Post("/workspace/mkdirs", payload, nil)
}

// Export downloads the object at the given workspace path in the given
// format, and returns the decoded content.
func (c *Client) Export(path string, format ExportFormat) ([]byte, error) {
	var resp struct {
		Content string `json:"content"`
	}
	query := url.Values{
		"path":   []string{path},
		"format": []string{string(format)},
	}
	if err := c.api.Get("/workspace/export", query, &resp); err != nil {
		return nil, mapNotFound(err, path)
	}

	content, err := base64.StdEncoding.DecodeString(resp.Content)
	if err != nil {
		return nil, errors.WithContext(err, "decode content")
	}
	return content, nil
}

// Import uploads content as the object at the given workspace path. Without
// overwrite, importing over an existing object fails with
// RemoteAlreadyExists.
func (c *Client) Import(path string, language Language, format ExportFormat,
	content []byte, overwrite bool) error {
	payload := struct {
		Path      string       `json:"path"`
		Language  Language     `json:"language,omitempty"`
		Format    ExportFormat `json:"format"`
		Content   string       `json:"content"`
		Overwrite bool         `json:"overwrite"`
	}{path, language, format, base64.StdEncoding.EncodeToString(content), overwrite}

	if err := c.api.Post("/workspace/import", payload, nil); err != nil {
		if errorCode(err) == errCodeAlreadyExists {
			return errors.RemoteAlreadyExists{Path: path}
		}
		return mapNotFound(err, path)
	}
	return nil
}

// Delete removes the object at the given workspace path. Deleting a
// non-empty folder requires recursive.
func (c *Client) Delete(path string, recursive bool) error {
	payload := struct {
		Path      string `json:"path"`
		Recursive bool   `json:"recursive"`
	}{path, recursive}

	if err := c.api.Post("/workspace/delete", payload, nil); err != nil {
		return mapNotFound(err, path)
	}
	return nil
}

func errorCode(err error) string {
	if apiErr, ok := errors.RootCause(err).(errors.APIError); ok {
		return apiErr.Code
	}
	return ""
}

// mapNotFound converts the server's does-not-exist error code into a
// RemoteNotFound for the path the caller asked about.
func mapNotFound(err error, path string) error {
	if errorCode(err) == errCodeDoesNotExist {
		return errors.RemoteNotFound{Path: path}
	}
	return err
}
