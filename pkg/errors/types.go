package errors

import (
	"fmt"
)

// MissingFieldError represents a missing required field.
type MissingFieldError struct {
	Field string
}

func (err MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", err.Field)
}

// FileNotFound represents when we were unable to access a local file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// LocalFileExists represents a refusal to overwrite an existing local file.
type LocalFileExists struct {
	Path string
}

func (err LocalFileExists) Error() string {
	return fmt.Sprintf("%q already exists", err.Path)
}

// NotARepository represents running a command that requires a git repository
// from a directory that isn't inside one.
type NotARepository struct {
	Dir string
}

func (err NotARepository) Error() string {
	return fmt.Sprintf("%q is not inside a git repository", err.Dir)
}

// UnconfiguredProfile represents a connection profile that hasn't been set
// up yet.
type UnconfiguredProfile struct {
	Profile string
}

func (err UnconfiguredProfile) Error() string {
	return err.FriendlyMessage()
}

// FriendlyMessage implements the friendly interface.
func (err UnconfiguredProfile) FriendlyMessage() string {
	if err.Profile == "" || err.Profile == "DEFAULT" {
		return "You haven't configured the CLI yet! " +
			"Please configure by entering `oxbow configure`"
	}
	return fmt.Sprintf("You haven't configured the CLI yet for the profile %s! "+
		"Please configure by entering `oxbow configure --profile %s`",
		err.Profile, err.Profile)
}

// RemoteNotFound represents a workspace path that doesn't exist on the
// remote server.
type RemoteNotFound struct {
	Path string
}

func (err RemoteNotFound) Error() string {
	return fmt.Sprintf("workspace path %q does not exist", err.Path)
}

// RemoteAlreadyExists represents a refusal by the remote server to overwrite
// an existing workspace object.
type RemoteAlreadyExists struct {
	Path string
}

func (err RemoteAlreadyExists) Error() string {
	return fmt.Sprintf("workspace path %q already exists", err.Path)
}

// Unauthorized represents a 401 response from the remote server.
type Unauthorized struct{}

func (err Unauthorized) Error() string {
	return "authentication failed"
}

// FriendlyMessage implements the friendly interface.
func (err Unauthorized) FriendlyMessage() string {
	return "Your authentication information may be incorrect. " +
		"Please reconfigure with `oxbow configure`"
}

// APIError represents a failed workspace API call that isn't covered by a
// more specific kind.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (err APIError) Error() string {
	if err.Code == "" {
		return fmt.Sprintf("server responded with status %d: %s",
			err.StatusCode, err.Message)
	}
	return fmt.Sprintf("%s: %s", err.Code, err.Message)
}
