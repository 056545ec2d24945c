// Package config loads the CLI configuration with koanf, layering
// defaults, an optional mage.yaml file, MAGE_-prefixed environment
// variables, and command-line flags (highest precedence).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/thunderstroke325/mage-ai/internal/config"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = "mage.yaml"
	ConfigFileNameAlt = "mage.yml"
)

var (
	configFileUsed string
	currentConfig  *intconfig.Config
)

// Load resolves the configuration. explicit is an optional config file
// path from --config; flags may be nil.
func Load(explicit string, flags *pflag.FlagSet) (*intconfig.Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"host":       intconfig.DefaultHost,
		"port":       intconfig.DefaultPort,
		"state_path": intconfig.DefaultStatePath,
		"sync_url":   intconfig.DefaultSyncURL,
		"output":     intconfig.DefaultOutputMode,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configFileUsed = ""
	if path := findConfigFile(explicit); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
		configFileUsed = path
	}

	// MAGE_API_KEY -> api_key, MAGE_STATE_PATH -> state_path, ...
	if err := k.Load(env.Provider("MAGE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "MAGE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg intconfig.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	currentConfig = &cfg
	return &cfg, nil
}

// GetCurrentConfig returns the configuration resolved by the last Load, or
// nil when Load has not run.
func GetCurrentConfig() *intconfig.Config {
	return currentConfig
}

// GetConfigFileUsed returns the config file path resolved by the last
// Load, or empty when none was found.
func GetConfigFileUsed() string {
	return configFileUsed
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}
