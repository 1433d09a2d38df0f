// Package config loads the settings of the jrpclint service.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML file, and JRPCLINT_* environment variables (for example
// JRPCLINT_SERVER_ADDR or JRPCLINT_LOG_LEVEL). A ".env" file in the working
// directory, if present, is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JRPCLINT"

type Config struct {
	Server  Server  `mapstructure:"server"`
	Log     Log     `mapstructure:"log"`
	Schemas Schemas `mapstructure:"schemas"`
}

type Server struct {
	Addr           string        `mapstructure:"addr"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level"`
	// Format is text or json.
	Format string `mapstructure:"format"`
}

type Schemas struct {
	// Dir holds one <method>.json schema per method. Empty disables params
	// checking.
	Dir string `mapstructure:"dir"`
}

var defaults = map[string]any{
	"server.addr":            ":8080",
	"server.max_body_bytes":  1 << 20,
	"server.read_timeout":    "10s",
	"server.write_timeout":   "10s",
	"server.allowed_origins": []string{},
	"log.level":              "info",
	"log.format":             "text",
	"schemas.dir":            "",
}

// Load reads the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: invalid server.max_body_bytes: %d (must be positive)", c.Server.MaxBodyBytes)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New("config: server timeouts must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log.level: %s (must be 'debug', 'info', 'warn' or 'error')", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: invalid log.format: %s (must be 'text' or 'json')", c.Log.Format)
	}
	return nil
}
