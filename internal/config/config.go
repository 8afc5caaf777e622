package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath   = "HOMEKEEPER_CONFIG"
	EnvDataDir      = "HOMEKEEPER_DATA_DIR"
	EnvTasksDB      = "HOMEKEEPER_TASKS_DB"
	EnvLogLevel     = "LOG_LEVEL"
	EnvPasswordCost = "HOMEKEEPER_PASSWORD_COST"
)

const budgetDBSuffix = "_budget_tracker.db"

// Config keeps runtime settings for both utilities.
type Config struct {
	// DataDir holds the per-user budget files and, by default, tasks.db.
	DataDir string `yaml:"data_dir"`
	// TasksDB overrides the to-do database path.
	TasksDB      string `yaml:"tasks_db"`
	LogLevel     string `yaml:"log_level"`
	PasswordCost int    `yaml:"password_cost"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DataDir:      ".",
		LogLevel:     "warn",
		PasswordCost: bcrypt.DefaultCost,
	}
}

// Load builds the configuration from defaults, then the YAML file at path (or $HOMEKEEPER_CONFIG),
// then environment overrides. A missing file is an error only when a path was given.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTasksDB)); v != "" {
		c.TasksDB = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPasswordCost)); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be a number, got %q", EnvPasswordCost, v)
		}
		c.PasswordCost = cost
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DataDir) == "" {
		problems = append(problems, "data_dir cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.PasswordCost < bcrypt.MinCost || c.PasswordCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("invalid password_cost %d: must be between %d and %d",
			c.PasswordCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// ErrInvalidUsername is returned for usernames that cannot name a database file.
var ErrInvalidUsername = errors.New("username must be non-empty and contain no path separators")

// BudgetDatabasePath returns <data_dir>/<username>_budget_tracker.db.
func (c Config) BudgetDatabasePath(username string) (string, error) {
	name := strings.TrimSpace(username)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return filepath.Join(c.DataDir, name+budgetDBSuffix), nil
}

// TasksDatabasePath returns tasks_db when set, otherwise <data_dir>/tasks.db.
func (c Config) TasksDatabasePath() string {
	if c.TasksDB != "" {
		return c.TasksDB
	}
	return filepath.Join(c.DataDir, "tasks.db")
}
