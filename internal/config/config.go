package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the collaborator address used when nothing else is configured.
// Override at build time with -ldflags "-X .../internal/config.DefaultBaseURL=...".
var DefaultBaseURL = "http://localhost:8000" //nolint:gochecknoglobals // set via ldflags

// Config holds the recopanel configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Collaborator CollaboratorConfig `yaml:"collaborator"`
	UI           UIConfig           `yaml:"ui"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File  string `yaml:"file"`  // terminal panel log file (default: recopanel.log)
}

// HTTPConfig holds web panel server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CollaboratorConfig holds the recommendation service settings.
type CollaboratorConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"` // 0 = wait indefinitely
}

// UIConfig holds presentation settings shared by the front ends.
type UIConfig struct {
	Title       string `yaml:"title"`
	Heading     string `yaml:"heading"`
	Tagline     string `yaml:"tagline"`
	Placeholder string `yaml:"placeholder"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing file is not an error: defaults apply.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	var cfg Config
	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case err == nil:
		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
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
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 3000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	// WriteTimeoutSec stays 0 (unbounded) unless set: a slow collaborator keeps the page loading.
	if c.Collaborator.BaseURL == "" {
		c.Collaborator.BaseURL = os.Getenv("API_URL")
	}
	if c.Collaborator.BaseURL == "" {
		c.Collaborator.BaseURL = DefaultBaseURL
	}
	c.Collaborator.BaseURL = strings.TrimRight(c.Collaborator.BaseURL, "/")
	if c.UI.Title == "" {
		c.UI.Title = "SHL Assessment Recommender"
	}
	if c.UI.Heading == "" {
		c.UI.Heading = "Find the Perfect Assessment"
	}
	if c.UI.Tagline == "" {
		c.UI.Tagline = "Enter a job description, role, or skill to get intelligent recommendations from the SHL catalog."
	}
	if c.UI.Placeholder == "" {
		c.UI.Placeholder = "e.g. 'Software Engineer looking for Python skills' or paste a JD URL..."
	}
	if c.Logging.File == "" {
		c.Logging.File = "recopanel.log"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.WriteTimeoutSec < 0 {
		return fmt.Errorf("http.write_timeout_sec must not be negative, got %d", c.HTTP.WriteTimeoutSec)
	}
	if c.Collaborator.TimeoutSec < 0 {
		return fmt.Errorf("collaborator.timeout_sec must not be negative, got %d", c.Collaborator.TimeoutSec)
	}
	u, err := url.Parse(c.Collaborator.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("collaborator.base_url must be an absolute http(s) URL, got %q", c.Collaborator.BaseURL)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
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
