package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the vcfheader configuration
type Config struct {
	Pattern     string       `mapstructure:"pattern"`
	Parallelism int          `mapstructure:"parallelism"`
	LogLevel    string       `mapstructure:"log_level"`
	Web         WebConfig    `mapstructure:"web"`
	Update      UpdateConfig `mapstructure:"update"`
}

// WebConfig represents web mode configuration
type WebConfig struct {
	Addr string `mapstructure:"addr"`
}

// UpdateConfig names the GitHub repository checked by --update
type UpdateConfig struct {
	Owner      string `mapstructure:"owner"`
	Repository string `mapstructure:"repository"`
}

// Flag names bound onto config keys.
var flagKeys = map[string]string{
	"parallelism": "parallelism",
	"log-level":   "log_level",
	"addr":        "web.addr",
}

// Load reads vcfheader.yaml (if any), VCFHEADER_* environment variables and
// the given flags, in increasing precedence. configFile overrides the search
// path when set.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("parallelism", 0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("web.addr", "localhost:8080")
	v.SetDefault("update.owner", "vcfheader")
	v.SetDefault("update.repository", "vcfheader")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("vcfheader")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "vcfheader"))
		}
	}

	// Enable environment variable support
	v.SetEnvPrefix("VCFHEADER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Level returns the parsed log level. Load has already validated it.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

func validateConfig(config *Config) error {
	if config.Parallelism < 0 {
		return fmt.Errorf("invalid parallelism %d: must be zero or positive", config.Parallelism)
	}
	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", config.LogLevel, err)
	}
	if config.Web.Addr == "" {
		return errors.New("web.addr must not be empty")
	}
	return nil
}
