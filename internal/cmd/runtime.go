package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/ptree/internal/config"
	"github.com/salmonumbrella/ptree/internal/portabletext"
)

const (
	defaultEnvFile = ".env"

	envAllowEmptyBlocks = "PTREE_ALLOW_EMPTY_BLOCKS"
	envBlockPath        = "PTREE_BLOCK_PATH"
	envLogLevel         = "PTREE_LOG_LEVEL"
)

// dotenv holds variables read from --env-file. The process environment wins
// over it.
var dotenv map[string]string

// loadConfigFromFlag loads config from --config if provided, otherwise from default path.
func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

// loadEnvFile reads --env-file. The default file is optional; an explicitly
// named one must exist.
func loadEnvFile(cmd *cobra.Command) error {
	dotenv = nil
	path := strings.TrimSpace(envFile)
	if path == "" {
		return nil
	}

	vars, err := readEnvFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !flagChanged(cmd, "env-file") {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	dotenv = vars
	return nil
}

func lookupEnv(key string) string {
	if v := strings.TrimSpace(envGet(key)); v != "" {
		return v
	}
	return strings.TrimSpace(dotenv[key])
}

// resolveFormatterConfig resolves formatter options with precedence:
// flags > env > config.
func resolveFormatterConfig(cmd *cobra.Command, cfg *config.Config) (portabletext.Config, error) {
	var resolved portabletext.Config
	if cfg != nil {
		resolved.AllowEmptyBlocks = cfg.AllowEmptyBlocks
	}

	if v := lookupEnv(envAllowEmptyBlocks); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return resolved, usageError{msg: fmt.Sprintf("invalid %s %q (expected true or false)", envAllowEmptyBlocks, v)}
		}
		resolved.AllowEmptyBlocks = allow
	}

	if flagChanged(cmd, "allow-empty-blocks") {
		resolved.AllowEmptyBlocks = formatAllowEmpty
	}

	return resolved, nil
}

// resolveBlockPath picks the gjson path with precedence flags > env > config.
func resolveBlockPath(cmd *cobra.Command, cfg *config.Config) string {
	if flagChanged(cmd, "path") {
		return strings.TrimSpace(formatPath)
	}
	if v := lookupEnv(envBlockPath); v != "" {
		return v
	}
	if cfg != nil {
		return strings.TrimSpace(cfg.BlockPath)
	}
	return ""
}

// resolveLogLevel picks the log level with precedence
// --debug > --log-level > env > config > warn.
func resolveLogLevel(cmd *cobra.Command, cfg *config.Config) (logrus.Level, error) {
	if debug {
		return logrus.DebugLevel, nil
	}

	name := ""
	switch {
	case flagChanged(cmd, "log-level"):
		name = logLevel
	case lookupEnv(envLogLevel) != "":
		name = lookupEnv(envLogLevel)
	case cfg != nil:
		name = cfg.LogLevel
	}
	if strings.TrimSpace(name) == "" {
		return logrus.WarnLevel, nil
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return logrus.WarnLevel, usageError{msg: fmt.Sprintf("invalid log level %q", name)}
	}
	return level, nil
}

func formatConfigLoadError(err error) error {
	if err == nil {
		return nil
	}
	return configError{err: fmt.Errorf("load config: %w", err)}
}
