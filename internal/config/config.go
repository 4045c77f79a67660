package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvEndpoint    = "PATHFINDER_ENDPOINT"
	EnvFormName    = "PATHFINDER_FORM_NAME"
	EnvTimeout     = "PATHFINDER_TIMEOUT"
	EnvLogLevel    = "PATHFINDER_LOG_LEVEL"
	EnvLogDir      = "PATHFINDER_LOG_DIR"
	EnvCatalogPath = "PATHFINDER_CATALOG"
)

// Config represents pathfinder configuration options
type Config struct {
	// Endpoint is the URL the contact form is posted to
	Endpoint string `yaml:"endpoint"`

	// FormName is the form identifier tag sent with every submission
	FormName string `yaml:"form_name"`

	// Timeout bounds a single submission request (0 = no timeout)
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where session logs are written (empty = console only)
	LogDir string `yaml:"log_dir"`

	// CatalogPath points to an alternative reference-data file (empty = built-in)
	CatalogPath string `yaml:"catalog_path"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Endpoint:    "http://localhost:8888/",
		FormName:    "contact",
		Timeout:     15 * time.Second,
		LogLevel:    "info",
		LogDir:      ".pathfinder/logs",
		CatalogPath: "",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML ("30s"), parsed separately
	type yamlConfig struct {
		Endpoint    string  `yaml:"endpoint"`
		FormName    string  `yaml:"form_name"`
		Timeout     string  `yaml:"timeout"`
		LogLevel    string  `yaml:"log_level"`
		LogDir      *string `yaml:"log_dir"`
		CatalogPath string  `yaml:"catalog_path"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Endpoint != "" {
		cfg.Endpoint = yamlCfg.Endpoint
	}
	if yamlCfg.FormName != "" {
		cfg.FormName = yamlCfg.FormName
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	// An explicit empty log_dir disables file logging
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}
	if yamlCfg.CatalogPath != "" {
		cfg.CatalogPath = yamlCfg.CatalogPath
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .pathfinder/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".pathfinder", "config.yaml")
	return LoadConfig(configPath)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides configuration values with PATHFINDER_* environment variables.
// lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		c.Endpoint = v
	}
	if v, ok := lookup(EnvFormName); ok && v != "" {
		c.FormName = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = timeout
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogDir); ok {
		c.LogDir = v
	}
	if v, ok := lookup(EnvCatalogPath); ok && v != "" {
		c.CatalogPath = v
	}
	return nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(endpoint *string, timeout *time.Duration, logLevel *string, logDir *string, catalogPath *string) {
	if endpoint != nil {
		c.Endpoint = *endpoint
	}
	if timeout != nil {
		c.Timeout = *timeout
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if catalogPath != nil {
		c.CatalogPath = *catalogPath
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("endpoint must be an absolute http(s) URL, got %q", c.Endpoint)
	}

	if strings.TrimSpace(c.FormName) == "" {
		return fmt.Errorf("form_name cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	return nil
}
