package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Matcher.ReferenceYear != 0 {
		t.Errorf("expected ReferenceYear=0, got %d", cfg.Matcher.ReferenceYear)
	}

	if !cfg.Matcher.FoldAccents {
		t.Error("expected FoldAccents=true")
	}

	if cfg.Matcher.MaxAlternatives != 3 {
		t.Errorf("expected MaxAlternatives=3, got %d", cfg.Matcher.MaxAlternatives)
	}

	if cfg.Logging.Format != "console" {
		t.Errorf("expected Format=console, got %s", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "pinned reference year",
			modify: func(c *Config) {
				c.Matcher.ReferenceYear = 2024
			},
			wantErr: false,
		},
		{
			name: "invalid reference year",
			modify: func(c *Config) {
				c.Matcher.ReferenceYear = 24
			},
			wantErr: true,
		},
		{
			name: "negative max_alternatives",
			modify: func(c *Config) {
				c.Matcher.MaxAlternatives = -1
			},
			wantErr: true,
		},
		{
			name: "missing database path",
			modify: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDBPath:        "/tmp/catalog.db",
		EnvLogLevel:      "debug",
		EnvReferenceYear: "2024",
		EnvSpreadsheetID: "sheet-123",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/catalog.db" {
		t.Errorf("Database.Path = %q, want /tmp/catalog.db", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Matcher.ReferenceYear != 2024 {
		t.Errorf("Matcher.ReferenceYear = %d, want 2024", cfg.Matcher.ReferenceYear)
	}
	if cfg.Sheets.SpreadsheetID != "sheet-123" {
		t.Errorf("Sheets.SpreadsheetID = %q, want sheet-123", cfg.Sheets.SpreadsheetID)
	}

	env[EnvReferenceYear] = "next year"
	if err := Default().applyEnv(lookup); err == nil {
		t.Error("expected error for non-numeric reference year")
	}
}

func TestLoad(t *testing.T) {
	for _, k := range []string{EnvDBPath, EnvLogLevel, EnvReferenceYear, EnvSpreadsheetID} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[database]
path = "` + filepath.Join(dir, "catalog.db") + `"

[matcher]
reference_year = 2025
fold_accents = false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Matcher.ReferenceYear != 2025 {
		t.Errorf("ReferenceYear = %d, want 2025", cfg.Matcher.ReferenceYear)
	}
	if cfg.Matcher.FoldAccents {
		t.Error("expected FoldAccents=false from file")
	}
	// Untouched sections keep their defaults
	if cfg.Matcher.MaxAlternatives != 3 {
		t.Errorf("MaxAlternatives = %d, want 3", cfg.Matcher.MaxAlternatives)
	}

	t.Setenv(EnvReferenceYear, "2030")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Matcher.ReferenceYear != 2030 {
		t.Errorf("ReferenceYear = %d, want env override 2030", cfg.Matcher.ReferenceYear)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	for _, k := range []string{EnvDBPath, EnvLogLevel, EnvReferenceYear, EnvSpreadsheetID} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.toml")
	data := "[database]\npath = \"" + filepath.Join(dir, "catalog.db") + "\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	// No .env in the working directory
	if _, err := Load(path); err != nil {
		t.Fatalf("Load without .env failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvLogLevel+"=debug\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load with .env failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug from .env", cfg.Logging.Level)
	}

	os.Unsetenv(EnvLogLevel)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MOTOMATCH-LOG-LEVEL=debug\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed .env")
	}
}
