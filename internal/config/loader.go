package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings
const (
	EnvDBPath        = "MOTOMATCH_DB_PATH"
	EnvLogLevel      = "MOTOMATCH_LOG_LEVEL"
	EnvReferenceYear = "MOTOMATCH_REFERENCE_YEAR"
	EnvSpreadsheetID = "MOTOMATCH_SPREADSHEET_ID"
)

// Load reads and parses the configuration file.
// Values from the environment (and a .env file, if present) take precedence.
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'motomatch config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Parse TOML
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// A missing .env file is fine, a malformed one is not
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides settings from the environment
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvSpreadsheetID); ok && v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v, ok := lookup(EnvReferenceYear); ok && v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be a year, got %q", EnvReferenceYear, v)
		}
		c.Matcher.ReferenceYear = year
	}
	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	c.Sheets.CredentialsPath, err = expandPath(c.Sheets.CredentialsPath)
	if err != nil {
		return err
	}

	c.Sheets.TokenPath, err = expandPath(c.Sheets.TokenPath)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Matcher validation
	if c.Matcher.ReferenceYear != 0 && (c.Matcher.ReferenceYear < 1900 || c.Matcher.ReferenceYear > 2999) {
		errs = append(errs, fmt.Errorf("matcher.reference_year must be 0 or a four-digit year, got %d", c.Matcher.ReferenceYear))
	}
	if c.Matcher.MaxAlternatives < 0 {
		errs = append(errs, errors.New("matcher.max_alternatives cannot be negative"))
	}

	// Sheets validation (only paths; the spreadsheet ID is checked on import)
	if c.Sheets.Range == "" {
		errs = append(errs, errors.New("sheets.range is required"))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error, disabled, got '%s'", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format must be 'json' or 'console', got '%s'", c.Logging.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates necessary directories for the database and token
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
		filepath.Dir(c.Sheets.TokenPath),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
