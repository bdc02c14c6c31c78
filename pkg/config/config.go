package config

// Package config provides a reusable loader for an Iroha node's
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.2.0

import (
	"fmt"

	"github.com/spf13/viper"

	"irohacore/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.2.0"

// Config represents the unified configuration for an Iroha node. It mirrors
// the structure of the YAML files under config/.
type Config struct {
	Chain struct {
		ID string `mapstructure:"id" json:"id"`
	} `mapstructure:"chain" json:"chain"`

	// Storage configures both the Block Store (Kura) directory and, if a
	// future WAL/snapshot layer is wired in, where it keeps its files.
	Storage struct {
		BlockStoreDir string `mapstructure:"block_store_dir" json:"block_store_dir"`
		Prune         bool   `mapstructure:"prune" json:"prune"`
	} `mapstructure:"storage" json:"storage"`

	Query struct {
		// DefaultFetchSize is loaded from configuration but the CLI's
		// query commands do not read it: without --fetch-size they use
		// MAX_FETCH_SIZE. MAX_FETCH_SIZE itself is a package constant in
		// core, not configurable.
		DefaultFetchSize int `mapstructure:"default_fetch_size" json:"default_fetch_size"`
	} `mapstructure:"query" json:"query"`

	Logging struct {
		Level   string `mapstructure:"level" json:"level"`
		File    string `mapstructure:"file" json:"file"`
		Verbose bool   `mapstructure:"verbose" json:"verbose"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up from .env

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the IROHA_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("IROHA_ENV", ""))
}
