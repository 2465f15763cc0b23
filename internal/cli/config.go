package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/motomatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the configuration after environment overrides
(MOTOMATCH_DB_PATH, MOTOMATCH_LOG_LEVEL, MOTOMATCH_REFERENCE_YEAR,
MOTOMATCH_SPREADSHEET_ID and a .env file in the working directory).`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Dir(configPath)
	dataDir := filepath.Join(home, ".local", "share", "motomatch")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Config file already exists at %s\n", configPath)
		fmt.Fprintln(out, "Use 'motomatch config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Created config file at %s\n", configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Add models with 'motomatch models add', or")
	fmt.Fprintln(out, "  2. Set sheets.spreadsheet_id, save Google OAuth credentials.json")
	fmt.Fprintf(out, "     to %s/ and run 'motomatch import sheets'\n", configDir)
	fmt.Fprintln(out, "  3. Try 'motomatch match mt 07 naked'")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			fmt.Fprintln(out, "No config file found. Run 'motomatch config init' to create one.")
			return nil
		}
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	fmt.Fprintf(out, "# Config file: %s\n\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

const defaultConfig = `# motomatch configuration

[database]
path = "~/.local/share/motomatch/catalog.db"

[matcher]
reference_year = 0        # 0 = current year; pin it for reproducible scores
fold_accents = true       # "propósito" matches "PROPOSITO"
max_alternatives = 3      # alternatives shown with a match (0 = all)

[sheets]
credentials_path = "~/.config/motomatch/credentials.json"
token_path = "~/.config/motomatch/token.json"
spreadsheet_id = ""       # or MOTOMATCH_SPREADSHEET_ID
range = "Catalog!A1:G"    # header row: name, segment, year, stock, test_drive, active, published

[logging]
level = "info"            # debug, info, warn, error, disabled
format = "console"        # console or json

[mcp]
enabled = true
transport = "stdio"
`
