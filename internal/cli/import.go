package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/motomatch/internal/output"
	"github.com/vijay-prabhu/motomatch/internal/sheets"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import catalog models from an external source",
}

var importSheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Import models from Google Sheets",
	Long: `Read the configured spreadsheet range and upsert its rows by model name.

The first row is a header. Recognised columns (any order, case-insensitive):
  name/modelo, segment/segmento, year/año, stock/existencias,
  test_drive/prueba, active/activo, published/publicado

Rows that fail to parse are reported and skipped.

Examples:
  motomatch import sheets --dry-run   # Parse and show, write nothing
  motomatch import sheets`,
	Args: cobra.NoArgs,
	RunE: runImportSheets,
}

var importDryRun bool

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importSheetsCmd)

	importSheetsCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse the sheet without writing to the catalog")
}

func runImportSheets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	importer, err := sheets.NewImporter(ctx, cfg.Sheets, os.Stderr)
	if err != nil {
		return err
	}

	rows, err := importer.FetchRows(ctx)
	if err != nil {
		return err
	}

	models, rowErrs, err := sheets.ParseRows(rows)
	if err != nil {
		return fmt.Errorf("failed to parse sheet: %w", err)
	}
	for _, re := range rowErrs {
		logger.Warn().Int("row", re.Row).Err(re.Err).Msg("skipping row")
	}

	logger.Info().
		Int("rows", len(rows)).
		Int("models", len(models)).
		Int("skipped", len(rowErrs)).
		Msg("sheet parsed")

	if importDryRun {
		return output.OutputTo(cmd.OutOrStdout(), outputFmt, models)
	}

	db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := sheets.Apply(ctx, db, models)
	logger.Info().
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("failed", res.Failed).
		Msg("import finished")

	if outputFmt == output.FormatJSON {
		if jerr := output.JSONTo(cmd.OutOrStdout(), res); jerr != nil {
			return jerr
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d model(s): %d created, %d updated, %d failed, %d row(s) skipped\n",
			res.Created+res.Updated, res.Created, res.Updated, res.Failed, len(rowErrs))
	}

	if err != nil {
		return fmt.Errorf("some models failed to import: %w", err)
	}
	return nil
}
