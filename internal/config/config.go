package config

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Matcher  MatcherConfig  `toml:"matcher"`
	Sheets   SheetsConfig   `toml:"sheets"`
	Logging  LoggingConfig  `toml:"logging"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains catalog database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MatcherConfig tunes how queries are prepared and results are reported
type MatcherConfig struct {
	// ReferenceYear pins "now" for recency scoring; 0 uses the system clock
	ReferenceYear   int  `toml:"reference_year"`
	FoldAccents     bool `toml:"fold_accents"`
	MaxAlternatives int  `toml:"max_alternatives"`
}

// SheetsConfig contains Google Sheets catalog import settings
type SheetsConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	TokenPath       string `toml:"token_path"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	Range           string `toml:"range"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json or console
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/motomatch/catalog.db",
		},
		Matcher: MatcherConfig{
			ReferenceYear:   0,
			FoldAccents:     true,
			MaxAlternatives: 3,
		},
		Sheets: SheetsConfig{
			CredentialsPath: "~/.config/motomatch/credentials.json",
			TokenPath:       "~/.config/motomatch/token.json",
			Range:           "Catalog!A1:G",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
