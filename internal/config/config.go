package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/shalinks/internal/commitlink"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when no --config is given.
const DefaultPath = "shalinks.yaml"

// Environment variables that override file values.
const (
	EnvRepository = "SHALINKS_REPOSITORY"
	EnvHost       = "SHALINKS_HOST"
	EnvLogLevel   = "SHALINKS_LOG_LEVEL"
)

// Config represents the application configuration.
type Config struct {
	Repository RepositoryConfig `yaml:"repository"`
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// RepositoryConfig describes the repository rendered content belongs to.
// Owner and name may be left empty to detect them from a git clone.
type RepositoryConfig struct {
	Host       string `yaml:"host"`
	Owner      string `yaml:"owner,omitempty"`
	Name       string `yaml:"name,omitempty"`
	DetectFrom string `yaml:"detect_from,omitempty"`
	Remote     string `yaml:"remote,omitempty"`
}

type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Repository.Host == "" {
		cfg.Repository.Host = "https://github.com"
	}
	if cfg.Repository.Remote == "" {
		cfg.Repository.Remote = "origin"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8088"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// Load loads configuration from the specified file.
//
// Variables from .env and .env.local are loaded first without overriding the
// process environment, then ${VAR} references in the file are expanded.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	return finish(&cfg)
}

// LoadOrDefault is Load, except that a missing file yields the defaults
// (still subject to environment overrides).
func LoadOrDefault(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if err == nil {
		return cfg, nil
	}
	if !errors.HasCategory(err, errors.CategoryNotFound) {
		return nil, err
	}
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		// godotenv.Load never overrides variables that are already set.
		_ = godotenv.Load(name)
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvRepository)); v != "" {
		owner, name, err := commitlink.ParseNameWithOwner(v)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid "+EnvRepository).
				WithContext("value", v).
				UserAction().
				Build()
		}
		cfg.Repository.Owner, cfg.Repository.Name = owner, name
	}
	if v := strings.TrimSpace(os.Getenv(EnvHost)); v != "" {
		cfg.Repository.Host = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = LogLevel(strings.ToLower(v))
	}
	return nil
}

// Validate checks field values after defaults were applied.
func (c *Config) Validate() error {
	r := c.Repository
	if (r.Owner == "") != (r.Name == "") {
		return errors.ConfigError("repository.owner and repository.name must be set together").Build()
	}
	if r.Owner != "" {
		if _, err := commitlink.NewRepository(r.Host, r.Owner, r.Name); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid repository").
				WithContext("repository", r.Owner+"/"+r.Name).
				UserAction().
				Build()
		}
	}
	if _, err := ParseLogLevel(string(c.Logging.Level)); err != nil {
		return err
	}
	if _, err := ParseLogFormat(string(c.Logging.Format)); err != nil {
		return err
	}
	if c.Server.ReadTimeout < 0 {
		return errors.ConfigError("server.read_timeout must not be negative").Build()
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.ConfigError("server.max_body_bytes must not be negative").Build()
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.ConfigError(fmt.Sprintf("metrics.path %q must start with /", c.Metrics.Path)).Build()
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Repository.Owner = "desktop"
	example.Repository.Name = "desktop"
	example.Metrics.Enabled = true

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	// #nosec G306 -- config file is meant to be readable
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
