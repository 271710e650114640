// Package config loads acs settings from a YAML file, an optional .env
// file and ACS_* environment variables, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside the data directory.
const FileName = "config.yaml"

// Environment variable names.
const (
	EnvDataDir           = "ACS_DATA_DIR"
	EnvMinLength         = "ACS_MIN_LENGTH"
	EnvHistoryEnabled    = "ACS_HISTORY_ENABLED"
	EnvHistoryMaxResults = "ACS_HISTORY_MAX_RESULTS"
	EnvWatchDebounce     = "ACS_WATCH_DEBOUNCE"
	EnvWorkflowDir       = "ACS_WORKFLOW_DIR"
)

// Config is the full application configuration.
type Config struct {
	DataDir   string         `yaml:"data_dir" validate:"required"`
	MinLength int            `yaml:"min_length" validate:"gte=0,lte=100000"`
	History   HistoryConfig  `yaml:"history"`
	Watch     WatchConfig    `yaml:"watch"`
	Workflow  WorkflowConfig `yaml:"workflow"`
}

// HistoryConfig controls the score history store.
type HistoryConfig struct {
	Enabled          bool `yaml:"enabled"`
	MaxResults       int  `yaml:"max_results" validate:"gte=1,lte=1000"`
	MaxContentLength int  `yaml:"max_content_length" validate:"gte=0"`
}

// WatchConfig controls `acs watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// WorkflowConfig controls where workflow projects are kept. An empty Dir
// resolves to <data_dir>/projects.
type WorkflowConfig struct {
	Dir string `yaml:"dir"`
}

var validate = validator.New()

// DefaultDataDir is ~/.acs, or ./.acs when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".acs"
	}
	return filepath.Join(home, ".acs")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		History: HistoryConfig{
			Enabled:          true,
			MaxResults:       50,
			MaxContentLength: 20000,
		},
		Watch: WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

// LoadEnvFile reads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration. With an empty path it reads
// <data_dir>/config.yaml if present; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(expandHome(cfg.DataDir), FileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.resolve()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// WorkflowDir returns the resolved workflow directory.
func (c *Config) WorkflowDir() string {
	if c.Workflow.Dir != "" {
		return c.Workflow.Dir
	}
	return filepath.Join(c.DataDir, "projects")
}

func (c *Config) resolve() {
	c.DataDir = expandHome(c.DataDir)
	c.Workflow.Dir = expandHome(c.Workflow.Dir)
	if c.Workflow.Dir == "" {
		c.Workflow.Dir = filepath.Join(c.DataDir, "projects")
	}
}

func applyEnv(c *Config) error {
	if v := os.Getenv(EnvMinLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinLength, err)
		}
		c.MinLength = n
	}
	if v := os.Getenv(EnvHistoryEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHistoryEnabled, err)
		}
		c.History.Enabled = b
	}
	if v := os.Getenv(EnvHistoryMaxResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHistoryMaxResults, err)
		}
		c.History.MaxResults = n
	}
	if v := os.Getenv(EnvWatchDebounce); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWatchDebounce, err)
		}
		c.Watch.Debounce = d
	}
	if v := os.Getenv(EnvWorkflowDir); v != "" {
		c.Workflow.Dir = v
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
