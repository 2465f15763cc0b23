package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/motomatch/internal/config"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	for _, env := range []string{config.EnvDBPath, config.EnvLogLevel, config.EnvReferenceYear, config.EnvSpreadsheetID} {
		t.Setenv(env, "")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[database]
path = %q

[matcher]
reference_year = 2024
max_alternatives = 3

[logging]
level = "disabled"
format = "json"
`, filepath.Join(dir, "data", "catalog.db"))

	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores every flag in the tree to its default so each
// in-process run starts from the state a fresh process would have.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue), "flag --%s", f.Name)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	resetFlags(t, rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), "motomatch %v: %s", args, out.String())
	return out.String()
}

func TestCatalogWorkflow(t *testing.T) {
	cfg := writeTestConfig(t)

	out := run(t, "-c", cfg, "models", "add", "MT-07", "--segment", "NAKED", "--year", "2024", "--stock", "5", "--test-drive")
	assert.Contains(t, out, "Model:       MT-07")

	run(t, "-c", cfg, "models", "add", "NMAX", "--segment", "SCOOTER", "--year", "2023", "--stock", "1")

	out = run(t, "-c", cfg, "match", "mt", "07", "naked", "--year", "2024")
	assert.Contains(t, out, "Match:       MT-07")
	assert.Contains(t, out, "230 (high)")

	out = run(t, "-c", cfg, "match", "mt", "07", "naked", "--year", "2024", "-o", "json")
	assert.Contains(t, out, `"found": true`)
	assert.Contains(t, out, `"name": "MT-07"`)

	out = run(t, "-c", cfg, "models", "list")
	assert.Contains(t, out, "MT-07")
	assert.Contains(t, out, "NMAX")

	out = run(t, "-c", cfg, "models", "update", "nmax", "--stock", "0")
	assert.Contains(t, out, "Stock:       0")

	out = run(t, "-c", cfg, "stats")
	assert.Contains(t, out, "Models:      2")

	out = run(t, "-c", cfg, "models", "remove", "mt-07")
	assert.Contains(t, out, "Removed MT-07")
}

func TestModelsAddStartsFromDefaults(t *testing.T) {
	cfg := writeTestConfig(t)

	run(t, "-c", cfg, "models", "add", "MT-07", "--segment", "NAKED", "--test-drive", "--inactive", "--unpublished")
	run(t, "-c", cfg, "models", "update", "mt-07", "--stock", "4", "--active=true")

	out := run(t, "-c", cfg, "models", "add", "NMAX")
	assert.NotContains(t, out, "Segment:")
	assert.Contains(t, out, "Stock:       0")
	assert.Contains(t, out, "Test drive:  no")
	assert.Contains(t, out, "Status:      active\n")

	// update only touches the flags it was given
	out = run(t, "-c", cfg, "models", "update", "nmax", "--year", "2023")
	assert.Contains(t, out, "Year:        2023")
	assert.Contains(t, out, "Stock:       0")
	assert.Contains(t, out, "Status:      active\n")
}

func TestMatchWithoutConfidentResult(t *testing.T) {
	cfg := writeTestConfig(t)

	run(t, "-c", cfg, "models", "add", "NMAX", "--segment", "SCOOTER", "--year", "2023", "--stock", "1")

	out := run(t, "-c", cfg, "match", "deportiva", "--year", "2024", "--explain")
	assert.Contains(t, out, `No confident match for "deportiva"`)
	assert.Contains(t, out, "incompatible segment SCOOTER for DEPORTIVA")
}

func TestConfigInit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "motomatch", "config.toml")

	out := run(t, "-c", path, "config", "init")
	assert.Contains(t, out, "Created config file")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Matcher.MaxAlternatives)
	assert.True(t, cfg.Matcher.FoldAccents)

	out = run(t, "-c", path, "config", "init")
	assert.Contains(t, out, "already exists")
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "today")
	defer SetVersionInfo("dev", "unknown", "unknown")

	out := run(t, "version")
	assert.Contains(t, out, "motomatch 1.2.3")
	assert.Contains(t, out, "abc123")
}
