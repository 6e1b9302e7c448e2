package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	log "github.com/sirupsen/logrus"

	"github.com/oxbowhq/oxbow-cli/pkg/errors"
)

const (
	// ConfigPath is the default path to the Oxbow connection config.
	ConfigPath = "~/.oxbow.yaml"

	// DefaultProfile is the profile commands use when --profile isn't given.
	DefaultProfile = "DEFAULT"

	// InitialConfigVersion is the first version of the connection config.
	// Config files that do not specify a version default to this version.
	InitialConfigVersion = "v1"

	// SupportedConfigVersion is the config version supported by the current
	// binary.
	SupportedConfigVersion = "v1"
)

// Config is the on-disk layout of the connection config. Each profile names
// one workspace the CLI can talk to.
type Config struct {
	Version  string             `json:"version,omitempty"`
	Profiles map[string]Profile `json:"profiles,omitempty"`
}

// Profile contains the connection information for one workspace.
type Profile struct {
	Host     string `json:"host"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
}

// parseConfigErrTemplate is a template for when the CLI fails to parse the
// connection config. This can happen for a multitude of reasons, including
// extraneous fields and incorrect field types. However, the yaml library
// constructs errors in a way that loses context, and so we can only pass the
// error message on.
const parseConfigErrTemplate = "Configuration file could not be parsed. " +
	"Please review %q.\n" +
	"Common pitfalls include:\n" +
	" - Using the wrong types for fields\n" +
	" - Having extra fields inside the config file\n\n" +
	"For reference, here is the error from the parser:\n" +
	"%s"

type incompatibleVersionError struct {
	path, exp, actual string
}

func (err incompatibleVersionError) Error() string {
	return err.FriendlyMessage()
}

func (err incompatibleVersionError) FriendlyMessage() string {
	return fmt.Sprintf("The configuration file %q is incompatible "+
		"with this version of the Oxbow CLI.\n"+
		"Expected version %q, but got %q.", err.path, err.exp, err.actual)
}

// homedirExpand will be overridden in mock tests.
var homedirExpand = homedir.Expand

// GetConfigPath returns the expanded path to the connection config, suitable
// for passing directly to file operations.
func GetConfigPath() (string, error) {
	return homedirExpand(ConfigPath)
}

// Parse reads the connection config stored at the default path.
func Parse() (Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return Config{}, errors.WithContext(err, "expand config path")
	}

	config := Config{Version: InitialConfigVersion}
	if err := parseConfig(path, &config, SupportedConfigVersion); err != nil {
		return Config{}, errors.WithContext(err, "parse")
	}
	return config, nil
}

// ParseProfile returns the named connection profile. It fails with
// UnconfiguredProfile when the config file doesn't exist yet, or when it
// doesn't define the profile.
func ParseProfile(name string) (Profile, error) {
	cfg, err := Parse()
	if err != nil {
		if _, ok := errors.RootCause(err).(errors.FileNotFound); ok {
			return Profile{}, errors.UnconfiguredProfile{Profile: name}
		}
		return Profile{}, err
	}

	profile, ok := cfg.Profiles[name]
	if !ok {
		return Profile{}, errors.UnconfiguredProfile{Profile: name}
	}
	return profile, nil
}

// Write stores the given config to disk. The file is created with owner-only
// permissions since profiles hold credentials.
func Write(cfg Config) error {
	cfg.Version = SupportedConfigVersion
	path, err := GetConfigPath()
	if err != nil {
		return errors.WithContext(err, "expand config path")
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0600); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// WriteProfile upserts the named profile, preserving any other profiles
// already stored in the config.
func WriteProfile(name string, profile Profile) error {
	cfg, err := Parse()
	if err != nil {
		cfg = Config{}
		log.WithError(err).Debug("Failed to read current config")
	}

	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	cfg.Profiles[name] = profile
	return Write(cfg)
}

func parseConfig(path string, config *Config, expVersion string) error {
	configBytes, err := afero.ReadFile(fs, path)
	if err != nil {
		if isPathNotFoundError(err) {
			return errors.FileNotFound{Path: path}
		}
		return errors.WithContext(err, "read file")
	}

	err = yaml.Unmarshal(configBytes, config)
	if err != nil {
		return errors.NewFriendlyError(parseConfigErrTemplate, path, err)
	}

	if config.Version != expVersion {
		return incompatibleVersionError{path, expVersion, config.Version}
	}

	// Do a strict unmarshal to check for any extra fields. We do a non-strict
	// unmarshal first so that we can catch version errors before erroring on
	// extra fields.
	err = yaml.UnmarshalStrict(configBytes, config, yaml.DisallowUnknownFields)
	if err != nil {
		return errors.NewFriendlyError(parseConfigErrTemplate, path, err)
	}
	return nil
}

func isPathNotFoundError(err error) bool {
	if fileErr, ok := err.(*os.PathError); ok && os.IsNotExist(fileErr.Err) {
		return true
	}
	return false
}
