package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.toml"

// ConfigFormatVersion is the current version of the configuration file format
const ConfigFormatVersion = "0.1.0"

// Config holds the defaults the textbuf command starts from. Every value
// can be overridden on the command line.
type Config struct {
	// FormatVersion is the version of this configuration file format
	FormatVersion string `toml:"format_version"`
	// Strategy selects the default buffering strategy: array, segmented, or auto
	Strategy string `toml:"strategy"`
	// SpillThreshold is the length in code units at which the auto strategy
	// migrates to a spill file
	SpillThreshold int64 `toml:"spill_threshold"`
	// TempDir is the directory spill files are created in; empty means the
	// system temp directory
	TempDir string `toml:"temp_dir"`
}

var config *Config

// GetConfig returns the current configuration, or nil when none was loaded.
func GetConfig() *Config {
	return config
}

// GetDefaultConfigPath returns the default path for the config file
// (e.g. ~/.config/textbuf/config.toml on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "textbuf", DefaultConfigFile), nil
}

// LoadConfig loads configuration from a file.
func LoadConfig(filename string) error {
	if filename == "" {
		return fmt.Errorf("config filename is required")
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	c := &Config{}
	if _, err := toml.Decode(string(content), c); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	config = c
	return nil
}

// ValidateConfig checks the parsed values and fills in defaults.
func ValidateConfig(c *Config) error {
	if c.FormatVersion != ConfigFormatVersion {
		return fmt.Errorf("unsupported config file format version: %s", c.FormatVersion)
	}
	if c.Strategy == "" {
		c.Strategy = "auto"
	}
	switch c.Strategy {
	case "array", "segmented", "auto":
	default:
		return fmt.Errorf("unknown strategy: %s", c.Strategy)
	}
	if c.SpillThreshold < 0 {
		return fmt.Errorf("spill_threshold must not be negative")
	}
	if c.TempDir != "" {
		info, err := os.Stat(c.TempDir)
		if err != nil {
			return fmt.Errorf("temp_dir not usable: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("temp_dir is not a directory: %s", c.TempDir)
		}
	}
	return nil
}
