package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/ptree/internal/output"
)

// AppName is the application name used for the config directory
const AppName = "ptree"

// Config holds CLI configuration
type Config struct {
	AllowEmptyBlocks bool   `yaml:"allow_empty_blocks,omitempty"`
	BlockPath        string `yaml:"block_path,omitempty"`    // gjson path to the block array
	OutputFormat     string `yaml:"output_format,omitempty"` // text, json, ndjson, table, yaml
	LogLevel         string `yaml:"log_level,omitempty"`     // debug, info, warn, error
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ReadConfig reads the config file from the default location
func ReadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load loads config from the given path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save saves config to the given path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Keys lists the settable config keys in file order.
func Keys() []string {
	return []string{"allow_empty_blocks", "block_path", "output_format", "log_level"}
}

// UnknownKeyError is returned by Set and Unset for keys not in Keys.
type UnknownKeyError string

func (e UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key: %s", string(e))
}

// Set parses value for key and stores it. Output formats and log levels are
// validated and normalized to lower case.
func (c *Config) Set(key, value string) error {
	switch key {
	case "allow_empty_blocks":
		allow, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid allow_empty_blocks %q (expected true or false)", value)
		}
		c.AllowEmptyBlocks = allow
	case "block_path":
		c.BlockPath = value
	case "output_format":
		format, err := output.ParseFormat(value)
		if err != nil {
			return err
		}
		c.OutputFormat = string(format)
	case "log_level":
		if _, err := logrus.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log_level %q", value)
		}
		c.LogLevel = strings.ToLower(value)
	default:
		return UnknownKeyError(key)
	}
	return nil
}

// Unset resets key to its zero value.
func (c *Config) Unset(key string) error {
	switch key {
	case "allow_empty_blocks":
		c.AllowEmptyBlocks = false
	case "block_path":
		c.BlockPath = ""
	case "output_format":
		c.OutputFormat = ""
	case "log_level":
		c.LogLevel = ""
	default:
		return UnknownKeyError(key)
	}
	return nil
}

// Values returns every key with its current value.
func (c *Config) Values() map[string]interface{} {
	return map[string]interface{}{
		"allow_empty_blocks": c.AllowEmptyBlocks,
		"block_path":         c.BlockPath,
		"output_format":      c.OutputFormat,
		"log_level":          c.LogLevel,
	}
}
