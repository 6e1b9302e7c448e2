// Package api implements the low-level HTTP client for the Oxbow REST API.
// Endpoint semantics live in the packages that use it (e.g. pkg/workspace);
// this package only deals with authentication, JSON codecs, and the error
// envelope.
package api

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oxbowhq/oxbow-cli/pkg/config"
	"github.com/oxbowhq/oxbow-cli/pkg/errors"
)

// Prefix is the path prefix shared by all API endpoints.
const Prefix = "/api/v1"

// Client makes authenticated requests against a single workspace.
type Client struct {
	host    string
	profile config.Profile
	client  *http.Client
}

// NewClient returns a client that authenticates with the credentials in the
// given connection profile.
func NewClient(profile config.Profile) *Client {
	return &Client{
		host:    strings.TrimRight(profile.Host, "/"),
		profile: profile,
		client:  http.DefaultClient,
	}
}

// Get calls the given endpoint and decodes the JSON response into out. A nil
// out discards the response body.
func (c *Client) Get(endpoint string, query url.Values, out interface{}) error {
	req, err := http.NewRequest("GET", c.url(endpoint), nil)
	if err != nil {
		return errors.WithContext(err, "new request")
	}
	req.URL.RawQuery = query.Encode()
	return c.do(req, out)
}

// Post calls the given endpoint with a JSON payload and decodes the JSON
// response into out. A nil out discards the response body.
func (c *Client) Post(endpoint string, payload, out interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return errors.WithContext(err, "create payload")
	}

	req, err := http.NewRequest("POST", c.url(endpoint), bytes.NewBuffer(payloadBytes))
	if err != nil {
		return errors.WithContext(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) url(endpoint string) string {
	return c.host + Prefix + endpoint
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.profile.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.profile.Token)
	} else {
		req.SetBasicAuth(c.profile.Username, c.profile.Password)
	}

	log.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("Calling workspace API")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.WithContext(err, "connect to workspace")
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.WithContext(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return parseError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.WithContext(err, "parse response")
	}
	return nil
}

// errorResponse is the envelope the server uses for failed calls.
type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func parseError(statusCode int, body []byte) error {
	if statusCode == 401 {
		return errors.Unauthorized{}
	}

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.ErrorCode == "" {
		return errors.APIError{
			StatusCode: statusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}
	return errors.APIError{
		StatusCode: statusCode,
		Code:       parsed.ErrorCode,
		Message:    parsed.Message,
	}
}
