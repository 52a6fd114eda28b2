package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/thenoetrevino/kanban/internal/config/colors"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is prepended to every environment override
	EnvPrefix = "KANBAN_"

	// EnvConfigPath names an explicit config file
	EnvConfigPath = EnvPrefix + "CONFIG"

	appName = "kanban"
)

// DefaultEnvFiles are loaded, when present, before environment overrides are read.
// Variables already set in the process environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database" envPrefix:"DATABASE_"`
	Server      ServerConfig       `yaml:"server" envPrefix:"SERVER_"`
	Cache       CacheConfig        `yaml:"cache" envPrefix:"CACHE_"`
	Log         LogConfig          `yaml:"log" envPrefix:"LOG_"`
	Board       BoardConfig        `yaml:"board" envPrefix:"BOARD_"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// DatabaseConfig selects and locates the task store
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"` // sqlite or postgres
	Path   string `yaml:"path" env:"PATH"`     // sqlite file, ":memory:" allowed
	DSN    string `yaml:"dsn" env:"DSN"`       // postgres connection string
}

// ServerConfig controls `kanban serve`
type ServerConfig struct {
	Addr             string   `yaml:"addr" env:"ADDR"`
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	AllowCredentials bool     `yaml:"allow_credentials" env:"ALLOW_CREDENTIALS"`
	Metrics          bool     `yaml:"metrics" env:"METRICS"`
}

// CacheConfig enables the Redis list cache when RedisURL is set
type CacheConfig struct {
	RedisURL string        `yaml:"redis_url" env:"REDIS_URL"`
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
}

// LogConfig controls the slog handler. File "-" means stderr.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // text or json
	File   string `yaml:"file" env:"FILE"`
}

// BoardConfig tunes the ordering engine
type BoardConfig struct {
	ReorderStrategy string `yaml:"reorder_strategy" env:"REORDER_STRATEGY"` // shift or rewrite
	MaxRetries      int    `yaml:"max_retries" env:"MAX_RETRIES"`
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	dataDir := DataDir()
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(dataDir, appName+".db"),
		},
		Server: ServerConfig{
			Addr:             ":8081",
			AllowedOrigins:   []string{"http://localhost:8080"},
			AllowCredentials: true,
			Metrics:          true,
		},
		Cache: CacheConfig{
			TTL: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dataDir, "logs", appName+".log"),
		},
		Board: BoardConfig{
			ReorderStrategy: "shift",
			MaxRetries:      3,
		},
	}
}

// LoadEnv loads the env files that exist and reports how many were read
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load builds the configuration from, in increasing precedence: defaults,
// the YAML config file, the theme file, and KANBAN_* environment variables
// (including those from .env files).
func Load() (*Config, error) {
	if _, err := LoadEnv(DefaultEnvFiles); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	config := Default()

	// Missing config path or file just means defaults
	if configPath, err := getConfigPath(); err == nil {
		if err := config.loadFile(configPath); err != nil {
			return nil, err
		}
	}

	loadThemeFile(config)

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// loadThemeFile loads and merges theme from KANBAN_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvPrefix + "THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver must be 'sqlite' or 'postgres', got '%s'", c.Database.Driver)
	}

	switch strings.ToLower(c.Board.ReorderStrategy) {
	case "shift", "rewrite":
	default:
		return fmt.Errorf("board.reorder_strategy must be 'shift' or 'rewrite', got '%s'", c.Board.ReorderStrategy)
	}
	if c.Board.MaxRetries < 0 {
		return fmt.Errorf("board.max_retries must be non-negative, got %d", c.Board.MaxRetries)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %s", c.Cache.TTL)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error")
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the config file location Load reads
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if explicit := os.Getenv(EnvConfigPath); explicit != "" {
		return explicit, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// DataDir is where the sqlite database and log file live by default
func DataDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(homeDir, "."+appName)
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.Board.ReorderStrategy = strings.ToLower(c.Board.ReorderStrategy)
	c.ColorScheme.ApplyDefaults()
}
