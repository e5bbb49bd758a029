/*
Package config manages the TOML config for cedictserve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/GabrieleMelucci/cedictserve/pkg/search"
)

// Config holds the entire config structure.
type Config struct {
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
}

// SearchConfig has matching engine options.
type SearchConfig struct {
	MinScore    float64 `toml:"min_score"`
	MaxResults  int     `toml:"max_results"`
	CacheSize   int     `toml:"cache_size"`
	DefaultLang string  `toml:"default_lang"`
}

// ServerConfig has HTTP server options.
type ServerConfig struct {
	Addr             string `toml:"addr"`
	ReadTimeoutSecs  int    `toml:"read_timeout_secs"`
	WriteTimeoutSecs int    `toml:"write_timeout_secs"`
}

// DictConfig holds dictionary source options.
type DictConfig struct {
	Path string `toml:"path"`
}

// DefaultConfig returns a Config with default values. The score
// threshold and result cap keep the values the original deployment
// shipped with.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MinScore:    search.DefaultMinScore,
			MaxResults:  search.DefaultMaxResults,
			CacheSize:   search.DefaultCacheSize,
			DefaultLang: search.DefaultLang,
		},
		Server: ServerConfig{
			Addr:             ":8080",
			ReadTimeoutSecs:  10,
			WriteTimeoutSecs: 10,
		},
		Dict: DictConfig{
			Path: "data/cedict_ts.u8",
		},
	}
}

// LoadConfig loads from a TOML file, layered over the defaults.
// Out-of-range values are clamped back to their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, err
	}
	config.clamp()
	return config, nil
}

// InitConfig loads config from file or creates a default one if missing.
func InitConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using builtin defaults...", configPath, err)
			return config, nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using builtin defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}
	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(config)
}

// clamp pulls loaded values back into valid ranges.
func (c *Config) clamp() {
	defaults := DefaultConfig()

	if c.Search.MinScore <= 0 || c.Search.MinScore >= 1 {
		log.Warnf("min_score %v out of range (0, 1), using %v", c.Search.MinScore, defaults.Search.MinScore)
		c.Search.MinScore = defaults.Search.MinScore
	}
	if c.Search.MaxResults <= 0 {
		log.Warnf("max_results %d must be positive, using %d", c.Search.MaxResults, defaults.Search.MaxResults)
		c.Search.MaxResults = defaults.Search.MaxResults
	}
	if c.Search.CacheSize <= 0 {
		log.Warnf("cache_size %d must be positive, using %d", c.Search.CacheSize, defaults.Search.CacheSize)
		c.Search.CacheSize = defaults.Search.CacheSize
	}
	if c.Search.DefaultLang == "" {
		c.Search.DefaultLang = defaults.Search.DefaultLang
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.ReadTimeoutSecs <= 0 {
		c.Server.ReadTimeoutSecs = defaults.Server.ReadTimeoutSecs
	}
	if c.Server.WriteTimeoutSecs <= 0 {
		c.Server.WriteTimeoutSecs = defaults.Server.WriteTimeoutSecs
	}
}
