package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultCatalogPath is where the catalog is read from when nothing is configured
	DefaultCatalogPath = "/usr/share/osinfodb"

	// DefaultRegexCacheTTL bounds how long compiled catalog patterns stay cached
	DefaultRegexCacheTTL = 10 * time.Minute
)

// Config holds all configuration for osinfodb.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// CatalogConfig locates the catalog documents.
type CatalogConfig struct {
	Paths         []string      `mapstructure:"paths"`
	RegexCacheTTL time.Duration `mapstructure:"regex_cache_ttl"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// MetricsConfig controls the metrics export. An empty textfile disables it.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration from path (or the default search locations when
// path is empty) and OSINFODB_* environment variables.
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs is Load reading the config file from fs.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	// Defaults
	v.SetDefault("catalog.paths", []string{DefaultCatalogPath})
	v.SetDefault("catalog.regex_cache_ttl", DefaultRegexCacheTTL)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)
	v.SetDefault("metrics.textfile", "")

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("osinfodb")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".osinfodb"))
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("OSINFODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
// It lowercases logging.level in place.
func (c *Config) Validate() error {
	if len(c.Catalog.Paths) == 0 {
		return fmt.Errorf("catalog.paths must not be empty")
	}
	for _, p := range c.Catalog.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("catalog.paths must not contain blank entries")
		}
	}
	if c.Catalog.RegexCacheTTL <= 0 {
		return fmt.Errorf("catalog.regex_cache_ttl must be greater than 0")
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
