package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Listing formats accepted by the list command
const (
	ListFormatTable = "table"
	ListFormatYAML  = "yaml"
)

// Config holds user settings loaded from the YAML configuration file.
type Config struct {
	// ULPath is the directory holding ul.cfg when a command is given none.
	ULPath string `yaml:"ul_path"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
	// StrictCatalog rejects ul.cfg files whose length is not a multiple of the record size.
	StrictCatalog bool `yaml:"strict_catalog"`
	// ListFormat selects the list output, "table" or "yaml".
	ListFormat string `yaml:"list_format"`
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() *Config {
	return &Config{
		ULPath:     ".",
		ListFormat: ListFormatTable,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/ulmake/config.yaml or its platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ulmake", "config.yaml"), nil
}

// LoadConfig reads the YAML file at path on top of the defaults.
// A missing file is only an error when required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			LogDebug(DebugConfigFileAbsent, path)
			return cfg, nil
		}
		return nil, FormatError(ErrFailedToLoadConfig, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewError(KindInvalidData, "load config", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, NewError(KindInvalidData, "load config", path, err)
	}

	return cfg, nil
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	switch c.ListFormat {
	case "":
		c.ListFormat = ListFormatTable
	case ListFormatTable, ListFormatYAML:
	default:
		return fmt.Errorf(ErrUnsupportedListingFormat, c.ListFormat)
	}
	if c.ULPath == "" {
		c.ULPath = "."
	}
	return nil
}
