// Package config provides configuration management for pvegraph.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with PVEGRAPH_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml, ~/.pvegraph/config.yaml, /etc/pvegraph/config.yaml)
//  3. .env files
//  4. Environment variables (PVEGRAPH_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Proxmox: %s\n", cfg.Proxmox.Host)
//
// # Environment Variables
//
// Use the PVEGRAPH_ prefix and underscores for nested keys:
//   - PVEGRAPH_SERVER_PORT=5000
//   - PVEGRAPH_PROXMOX_HOST=https://pve.example.com:8006
//   - PVEGRAPH_PROXMOX_TOKEN_ID=root@pam!graph
//
// The unprefixed names PROXMOX_HOST, PROXMOX_TOKEN_ID, PROXMOX_TOKEN_SECRET,
// VERIFY_SSL, PORT and DEBUG are accepted as well.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables read by Load.
const EnvPrefix = "PVEGRAPH"

// Config is the root configuration structure for pvegraph.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Proxmox contains the API endpoint and token used to read the cluster
	Proxmox ProxmoxConfig `mapstructure:"proxmox" yaml:"proxmox"`

	// Topology contains settings of the topology push
	Topology TopologyConfig `mapstructure:"topology" yaml:"topology"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Security contains rate limiting and CORS settings
	Security SecurityConfig `mapstructure:"security" yaml:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address (default: 0.0.0.0)
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the server listen port (default: 5000)
	Port int `mapstructure:"port" yaml:"port"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Debug exposes internal error details in responses
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// ProxmoxConfig contains the Proxmox VE API settings.
type ProxmoxConfig struct {
	// Host is the API base URL, e.g. https://pve.example.com:8006
	Host string `mapstructure:"host" yaml:"host" validate:"required,url"`

	// TokenID has the form user@realm!tokenname
	TokenID string `mapstructure:"token_id" yaml:"token_id" validate:"required,contains=!"`

	TokenSecret string `mapstructure:"token_secret" yaml:"token_secret" validate:"required"`

	// VerifySSL enables TLS certificate verification (default: false)
	VerifySSL bool `mapstructure:"verify_ssl" yaml:"verify_ssl"`

	// Timeout bounds every API request
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// TopologyConfig contains settings of the WebSocket topology push.
type TopologyConfig struct {
	// RefreshInterval is the time between two pushes to connected clients
	RefreshInterval time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level"`

	// Format is the log format (json, text)
	Format string `mapstructure:"format" yaml:"format"`
}

// SecurityConfig contains rate limiting and CORS settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// legacyEnv lists the unprefixed variable names accepted for some keys.
var legacyEnv = map[string]string{
	"proxmox.host":         "PROXMOX_HOST",
	"proxmox.token_id":     "PROXMOX_TOKEN_ID",
	"proxmox.token_secret": "PROXMOX_TOKEN_SECRET",
	"proxmox.verify_ssl":   "VERIFY_SSL",
	"server.port":          "PORT",
	"server.debug":         "DEBUG",
}

var cfg *Config

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (PVEGRAPH_ prefix, then unprefixed legacy names)
//  2. .env file
//  3. Configuration file
//  4. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.pvegraph")
		v.AddConfigPath("/etc/pvegraph")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			// an explicit but missing file falls back to defaults
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", legacy, err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	c.Proxmox.Host = strings.TrimRight(strings.TrimSpace(c.Proxmox.Host), "/")

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = c
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)

	v.SetDefault("proxmox.host", "https://localhost:8006")
	v.SetDefault("proxmox.token_id", "")
	v.SetDefault("proxmox.token_secret", "")
	v.SetDefault("proxmox.verify_ssl", false)
	v.SetDefault("proxmox.timeout", "10s")

	v.SetDefault("topology.refresh_interval", "30s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", cfg.Server.ShutdownTimeout)
	}

	if cfg.Proxmox.Timeout <= 0 {
		return fmt.Errorf("proxmox timeout must be positive, got %s", cfg.Proxmox.Timeout)
	}

	if cfg.Topology.RefreshInterval <= 0 {
		return fmt.Errorf("topology refresh interval must be positive, got %s", cfg.Topology.RefreshInterval)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown logging format %q", cfg.Logging.Format)
	}

	return nil
}

// Get returns the configuration of the last successful Load.
func Get() *Config {
	return cfg
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Masked returns a copy of c that is safe to print. The token secret is
// replaced and only the user part of the token id is kept.
func (c Config) Masked() Config {
	if c.Proxmox.TokenSecret != "" {
		c.Proxmox.TokenSecret = "********"
	}
	if user, _, ok := strings.Cut(c.Proxmox.TokenID, "!"); ok {
		c.Proxmox.TokenID = user + "!********"
	}
	c.Security.AllowedOrigins = append([]string(nil), c.Security.AllowedOrigins...)
	return c
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
