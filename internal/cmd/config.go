package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/ptree/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration stored in ~/.config/ptree/config.yaml.

You can view, set, or unset config keys such as allow_empty_blocks,
block_path, output_format, and log_level.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigFromFlag()
		if err != nil {
			return formatConfigLoadError(err)
		}
		if structuredOutputRequested() {
			return printStructured(cmd.Context(), configOutput(cfg))
		}

		w := stdoutFromContext(cmd.Context())
		fmt.Fprintln(w, "Config:")
		fmt.Fprintf(w, "  allow_empty_blocks: %t\n", cfg.AllowEmptyBlocks)
		fmt.Fprintf(w, "  block_path: %s\n", cfg.BlockPath)
		fmt.Fprintf(w, "  output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(w, "  log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Unset a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported configuration keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := supportedConfigKeys()
		sort.Strings(keys)

		if structuredOutputRequested() {
			return printStructured(cmd.Context(), keys)
		}

		w := stdoutFromContext(cmd.Context())
		fmt.Fprintln(w, "Supported keys:")
		for _, key := range keys {
			fmt.Fprintf(w, "  %s\n", key)
		}
		return nil
	},
}

func configPath() (string, error) {
	if strings.TrimSpace(configFile) != "" {
		return configFile, nil
	}
	return config.DefaultConfigPath()
}

func supportedConfigKeys() []string {
	return config.Keys()
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return usageError{msg: err.Error()}
	}
	return nil
}

func clearConfigValue(cfg *config.Config, key string) error {
	if err := cfg.Unset(key); err != nil {
		return usageError{msg: err.Error()}
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configKeysCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(args[1])

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return configError{err: err}
	}
	if err := cfg.Save(path); err != nil {
		return configError{err: err}
	}
	logger.WithFields(logrus.Fields{"key": key, "path": path}).Info("config updated")

	if structuredOutputRequested() {
		return printStructured(cmd.Context(), map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}

	fmt.Fprintf(stdoutFromContext(cmd.Context()), "Updated %s\n", key)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := clearConfigValue(cfg, key); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return configError{err: err}
	}
	if err := cfg.Save(path); err != nil {
		return configError{err: err}
	}
	logger.WithFields(logrus.Fields{"key": key, "path": path}).Info("config unset")

	if structuredOutputRequested() {
		return printStructured(cmd.Context(), map[string]string{
			"status": "unset",
			"key":    key,
		})
	}

	fmt.Fprintf(stdoutFromContext(cmd.Context()), "Unset %s\n", key)
	return nil
}

func configOutput(cfg *config.Config) map[string]interface{} {
	return cfg.Values()
}
