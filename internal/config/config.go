// Package config manages the TOML configuration for the spellbind CLI
// and server.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the entire config structure.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
}

// EngineConfig has the lookup engine parameters.
type EngineConfig struct {
	MaxEditDistance int   `toml:"max_edit_distance"`
	PrefixLength    int   `toml:"prefix_length"`
	CountThreshold  int64 `toml:"count_threshold"`
}

// DictConfig points at the lexicon inputs.
type DictConfig struct {
	UnigramPath string `toml:"unigram_path"`
	BigramPath  string `toml:"bigram_path"`
	IndexPath   string `toml:"index_path"`
}

// ServerConfig has the HTTP listen options.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration, mirroring the engine
// defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxEditDistance: 2,
			PrefixLength:    7,
			CountThreshold:  1,
		},
		Server: ServerConfig{
			Addr: ":8570",
		},
	}
}

// Load reads a TOML config file, layering it over the defaults. A missing
// file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
