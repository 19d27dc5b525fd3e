package cli

import (
	"encoding/json"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/avollmer/depvis/pkg/errors"
)

const maxFilterLength = 50

// Config is the JSON configuration consumed by the run and export commands.
//
// repository_url is overloaded the same way the config file format defines
// it: in test mode it is the path of a local fixture file, otherwise the
// base URL of an npm-compatible registry.
type Config struct {
	PackageName        string `json:"package_name"`
	RepositoryURL      string `json:"repository_url"`
	Version            string `json:"version"`
	FilterSubstring    string `json:"filter_substring"`
	TestRepositoryMode bool   `json:"test_repository_mode"`
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	cfg := Config{Version: "latest"}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s is not valid JSON", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every configuration field and returns the first problem
// found as a structured error.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PackageName) == "" {
		return errors.New(errors.ErrCodeInvalidPackage, "package_name must not be empty")
	}
	if err := c.validateRepository(); err != nil {
		return err
	}
	if err := validateVersion(c.Version); err != nil {
		return err
	}
	if len(c.FilterSubstring) > maxFilterLength {
		return errors.New(errors.ErrCodeInvalidFilter,
			"filter_substring exceeds %d characters", maxFilterLength)
	}
	return nil
}

func (c *Config) validateRepository() error {
	if c.RepositoryURL == "" {
		return errors.New(errors.ErrCodeInvalidRepository, "repository_url must not be empty")
	}

	if c.TestRepositoryMode {
		info, err := os.Stat(c.RepositoryURL)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err,
				"test repository file %s", c.RepositoryURL)
		}
		if info.IsDir() {
			return errors.New(errors.ErrCodeInvalidRepository,
				"test repository %s is a directory, not a file", c.RepositoryURL)
		}
		return nil
	}

	u, err := url.Parse(c.RepositoryURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(errors.ErrCodeInvalidRepository,
			"repository_url %q is not a valid URL", c.RepositoryURL)
	}
	return nil
}

// validateVersion accepts "latest" or a 1-3 part dotted numeric version.
func validateVersion(version string) error {
	if version == "latest" {
		return nil
	}
	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		return errors.New(errors.ErrCodeInvalidVersion,
			"version %q must have at most three dot-separated parts", version)
	}
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return errors.New(errors.ErrCodeInvalidVersion,
				"version %q must be numeric or \"latest\"", version)
		}
	}
	return nil
}
