package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (KBGRAPH_*)
// 2. Config file (.kbgraph.yaml in the working directory)
// 3. Built-in source registry
//
// Source entries from the config file are merged over the registry: a file
// entry replaces the built-in entry of the same name, unknown names add new
// sources.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".kbgraph")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("KBGRAPH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaults := Default()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("workers", defaults.Workers)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, the registry covers everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Merge configured sources over the built-in registry.
	merged := defaults.Sources
	for name, src := range cfg.Sources {
		merged[name] = src
	}
	cfg.Sources = merged

	return cfg, nil
}
