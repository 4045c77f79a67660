package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != "http://localhost:8888/" {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, "http://localhost:8888/")
	}
	if cfg.FormName != "contact" {
		t.Errorf("FormName = %q, want %q", cfg.FormName, "contact")
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != ".pathfinder/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, ".pathfinder/logs")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `endpoint: https://forms.example.com/submit
form_name: inquiry
timeout: 30s
log_level: debug
log_dir: /tmp/logs
catalog_path: ./catalog.yaml
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Endpoint != "https://forms.example.com/submit" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.FormName != "inquiry" {
		t.Errorf("FormName = %q, want %q", cfg.FormName, "inquiry")
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/logs")
	}
	if cfg.CatalogPath != "./catalog.yaml" {
		t.Errorf("CatalogPath = %q, want %q", cfg.CatalogPath, "./catalog.yaml")
	}
}

// TestLoadConfigPartialFile keeps defaults for missing keys
func TestLoadConfigPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.FormName != "contact" {
		t.Errorf("FormName = %q, want default", cfg.FormName)
	}
	if cfg.LogDir != ".pathfinder/logs" {
		t.Errorf("LogDir = %q, want default", cfg.LogDir)
	}
}

// TestLoadConfigEmptyLogDir disables file logging explicitly
func TestLoadConfigEmptyLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("log_dir: \"\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
}

// TestLoadConfigMissingFile returns defaults
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default", cfg.LogLevel)
	}
}

// TestLoadConfigErrors covers malformed files
func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "endpoint: [unclosed\n", "failed to parse config file"},
		{"bad timeout", "timeout: soon\n", "invalid timeout format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			_, err := LoadConfig(configPath)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

// TestLoadConfigFromDir reads .pathfinder/config.yaml
func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".pathfinder"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".pathfinder", "config.yaml"), []byte("form_name: dir\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.FormName != "dir" {
		t.Errorf("FormName = %q, want %q", cfg.FormName, "dir")
	}
}

// TestApplyEnv overrides from environment lookups
func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvEndpoint: "https://env.example.com/",
		EnvTimeout:  "2m",
		EnvLogLevel: "error",
		EnvLogDir:   "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Endpoint != "https://env.example.com/" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.FormName != "contact" {
		t.Errorf("FormName = %q, want default", cfg.FormName)
	}

	env[EnvTimeout] = "later"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("expected error for bad timeout")
	}
}

// TestLoadDotEnv populates the process environment from a file
func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("PATHFINDER_FORM_NAME=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvFormName)
	t.Cleanup(func() { os.Unsetenv(EnvFormName) })

	if err := LoadDotEnv(filepath.Join(tmpDir, "missing.env"), envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(EnvFormName); got != "from-dotenv" {
		t.Errorf("%s = %q, want %q", EnvFormName, got, "from-dotenv")
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		t.Fatal(err)
	}
	if cfg.FormName != "from-dotenv" {
		t.Errorf("FormName = %q, want %q", cfg.FormName, "from-dotenv")
	}
}

// TestMergeWithFlags verifies flag precedence
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	endpoint := "https://flag.example.com/"
	timeout := time.Minute
	logDir := ""

	cfg.MergeWithFlags(&endpoint, &timeout, nil, &logDir, nil)

	if cfg.Endpoint != endpoint {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, endpoint)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want unchanged", cfg.LogLevel)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
}

// TestValidate covers invalid values
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"relative endpoint", func(c *Config) { c.Endpoint = "/submit" }, "endpoint must be an absolute"},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://example.com/" }, "endpoint must be an absolute"},
		{"empty form name", func(c *Config) { c.FormName = " " }, "form_name cannot be empty"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
