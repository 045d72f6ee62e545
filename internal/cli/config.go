package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codalotl/udiff/internal/linereader"
	"github.com/codalotl/udiff/internal/render"
	"github.com/codalotl/udiff/internal/streamdiff"
	"github.com/codalotl/udiff/internal/udiff"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is udiff's configuration, loaded from (lowest to highest precedence) defaults, the global config file, UDIFF_* environment variables, and flags.
type Config struct {
	Context    int    `mapstructure:"context"`
	Lookahead  int    `mapstructure:"lookahead"`
	Color      string `mapstructure:"color"`
	Exact      bool   `mapstructure:"exact"`
	ExactLimit int64  `mapstructure:"exact_limit"`
	Decompress bool   `mapstructure:"decompress"`
	ExitCode   bool   `mapstructure:"exit_code"`
}

const envPrefix = "UDIFF"

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"context":     "context",
	"lookahead":   "lookahead",
	"color":       "color",
	"exact":       "exact",
	"exact-limit": "exact_limit",
	"decompress":  "decompress",
	"exit-code":   "exit_code",
}

func defaultConfig() Config {
	return Config{
		Context:    streamdiff.DefaultMaxContext,
		Lookahead:  linereader.DefaultMaxLookahead,
		Color:      string(render.ColorAuto),
		ExactLimit: udiff.DefaultExactLimit,
		Decompress: true,
	}
}

// globalConfigPath returns "~/.udiff/config.json".
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".udiff", "config.json"), nil
}

// loadConfig loads the configuration for cmd. If configPath is set, that file must exist and is used instead of the global config file.
func loadConfig(cmd *cobra.Command, configPath string) (Config, error) {
	v := viper.New()

	defaults := defaultConfig()
	v.SetDefault("context", defaults.Context)
	v.SetDefault("lookahead", defaults.Lookahead)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("exact", defaults.Exact)
	v.SetDefault("exact_limit", defaults.ExactLimit)
	v.SetDefault("decompress", defaults.Decompress)
	v.SetDefault("exit_code", defaults.ExitCode)

	v.SetConfigType("json")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return Config{}, fmt.Errorf("load configuration: %w", err)
		}
		v.SetConfigFile(configPath)
	} else if p, err := globalConfigPath(); err == nil {
		if _, err := os.Stat(p); err == nil {
			v.SetConfigFile(p)
		}
	}
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("load configuration %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, usageErrorf("invalid configuration: %v", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var errs []error
	if cfg.Context < 0 {
		errs = append(errs, fmt.Errorf("context must be >= 0 (got %d)", cfg.Context))
	}
	if cfg.Lookahead < 1 {
		errs = append(errs, fmt.Errorf("lookahead must be >= 1 (got %d)", cfg.Lookahead))
	}
	if _, err := render.ParseColorMode(cfg.Color); err != nil {
		errs = append(errs, err)
	}
	if cfg.ExactLimit <= 0 {
		errs = append(errs, fmt.Errorf("exact_limit must be > 0 (got %d)", cfg.ExactLimit))
	}
	if err := errors.Join(errs...); err != nil {
		return usageErrorf("invalid configuration: %v", err)
	}
	return nil
}
