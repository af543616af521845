package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the learnhub API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
	Chart   ChartConfig   `yaml:"chart"`
	Content ContentConfig `yaml:"content"`
	Auth    AuthConfig    `yaml:"auth"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ChartConfig holds chart rendering settings.
type ChartConfig struct {
	Scale float64 `yaml:"scale"` // bar length of the largest value (default: 120)
}

// ContentConfig points at the screen content.
type ContentConfig struct {
	SeedFile string `yaml:"seed_file"` // empty = built-in content
}

// AuthConfig holds identity provider settings.
type AuthConfig struct {
	Provider         string       `yaml:"provider"` // local (default), google
	SessionTTLSec    int          `yaml:"session_ttl_sec"`
	SweepIntervalSec int          `yaml:"sweep_interval_sec"`
	Users            []UserConfig `yaml:"users"`
	Google           GoogleConfig `yaml:"google"`
}

// UserConfig is a local account. PasswordHash is a bcrypt hash.
type UserConfig struct {
	ID           string `yaml:"id"`
	Email        string `yaml:"email"`
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
	ImageURL     string `yaml:"image_url"`
	PasswordHash string `yaml:"password_hash"`
}

// GoogleConfig holds Google OAuth client settings.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	UserInfoURL  string `yaml:"userinfo_url"`
	// MaxPendingStates caps OAuth flows awaiting their callback.
	MaxPendingStates int `yaml:"max_pending_states"`
}

// Auth provider names.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Chart.Scale == 0 {
		c.Chart.Scale = 120
	}
	if c.Auth.Provider == "" {
		c.Auth.Provider = ProviderLocal
	}
	if c.Auth.SessionTTLSec <= 0 {
		c.Auth.SessionTTLSec = 7 * 24 * 3600
	}
	if c.Auth.SweepIntervalSec <= 0 {
		c.Auth.SweepIntervalSec = 60
	}
	if c.Auth.Google.MaxPendingStates <= 0 {
		c.Auth.Google.MaxPendingStates = 10000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Chart.Scale <= 0 || math.IsInf(c.Chart.Scale, 0) || math.IsNaN(c.Chart.Scale) {
		return fmt.Errorf("chart.scale must be a positive number, got %v", c.Chart.Scale)
	}
	switch c.Auth.Provider {
	case ProviderLocal:
		if len(c.Auth.Users) == 0 {
			return fmt.Errorf("auth.users is required for the local provider")
		}
	case ProviderGoogle:
		if c.Auth.Google.ClientID == "" {
			return fmt.Errorf("auth.google.client_id is required for the google provider")
		}
		if c.Auth.Google.RedirectURL == "" {
			return fmt.Errorf("auth.google.redirect_url is required for the google provider")
		}
	default:
		return fmt.Errorf("auth.provider must be %q or %q, got %q", ProviderLocal, ProviderGoogle, c.Auth.Provider)
	}
	for i, u := range c.Auth.Users {
		if u.ID == "" || u.Email == "" || u.PasswordHash == "" {
			return fmt.Errorf("auth.users[%d]: id, email and password_hash are required", i)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
