package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/motomatch/internal/catalog"
	"github.com/vijay-prabhu/motomatch/internal/output"
)

var modelsCmd = &cobra.Command{
	Use:     "models",
	Aliases: []string{"model"},
	Short:   "Manage catalog models",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog models",
	Long: `List catalog models in catalog order.

Examples:
  motomatch models list                    # All models
  motomatch models list --segment=naked    # Filter by segment
  motomatch models list --active -o json   # Active models as JSON`,
	Args: cobra.NoArgs,
	RunE: runModelsList,
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Show one model",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsShow,
}

var modelsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a model to the catalog",
	Long: `Add a model to the catalog. New models are active and published
unless --inactive or --unpublished is given.

Example:
  motomatch models add "MT-07" --segment naked --year 2024 --stock 5 --test-drive`,
	Args: cobra.ExactArgs(1),
	RunE: runModelsAdd,
}

var modelsUpdateCmd = &cobra.Command{
	Use:   "update <name-or-id>",
	Short: "Update fields of a model",
	Long: `Update a model. Only the flags given are changed.

Examples:
  motomatch models update mt-07 --stock 0
  motomatch models update mt-07 --active=false`,
	Args: cobra.ExactArgs(1),
	RunE: runModelsUpdate,
}

var modelsRemoveCmd = &cobra.Command{
	Use:     "remove <name-or-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a model from the catalog",
	Args:    cobra.ExactArgs(1),
	RunE:    runModelsRemove,
}

var (
	listSegment   string
	listActive    bool
	listPublished bool
	listLimit     int
	listOffset    int

	addSegment     string
	addYear        int
	addStock       int
	addTestDrive   bool
	addInactive    bool
	addUnpublished bool

	updateName      string
	updateSegment   string
	updateYear      int
	updateStock     int
	updateTestDrive bool
	updateActive    bool
	updatePublished bool
)

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsListCmd, modelsShowCmd, modelsAddCmd, modelsUpdateCmd, modelsRemoveCmd)

	modelsListCmd.Flags().StringVar(&listSegment, "segment", "", "Filter by segment (partial match)")
	modelsListCmd.Flags().BoolVar(&listActive, "active", false, "Only active models")
	modelsListCmd.Flags().BoolVar(&listPublished, "published", false, "Only published models")
	modelsListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
	modelsListCmd.Flags().IntVar(&listOffset, "offset", 0, "Skip the first N results")

	modelsAddCmd.Flags().StringVar(&addSegment, "segment", "", "Segment (e.g. NAKED, SCOOTER)")
	modelsAddCmd.Flags().IntVar(&addYear, "year", 0, "Model year")
	modelsAddCmd.Flags().IntVar(&addStock, "stock", 0, "Units in stock")
	modelsAddCmd.Flags().BoolVar(&addTestDrive, "test-drive", false, "Test drive available")
	modelsAddCmd.Flags().BoolVar(&addInactive, "inactive", false, "Add as inactive")
	modelsAddCmd.Flags().BoolVar(&addUnpublished, "unpublished", false, "Add as unpublished")

	modelsUpdateCmd.Flags().StringVar(&updateName, "name", "", "New name")
	modelsUpdateCmd.Flags().StringVar(&updateSegment, "segment", "", "Segment")
	modelsUpdateCmd.Flags().IntVar(&updateYear, "year", 0, "Model year (0 clears it)")
	modelsUpdateCmd.Flags().IntVar(&updateStock, "stock", 0, "Units in stock")
	modelsUpdateCmd.Flags().BoolVar(&updateTestDrive, "test-drive", false, "Test drive available")
	modelsUpdateCmd.Flags().BoolVar(&updateActive, "active", true, "Active")
	modelsUpdateCmd.Flags().BoolVar(&updatePublished, "published", true, "Published")
}

// findModel looks a model up by name, then by ID
func findModel(ctx context.Context, db *catalog.DB, ident string) (*catalog.Model, error) {
	m, err := db.GetModelByName(ctx, ident)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m, err = db.GetModel(ctx, ident)
		if err != nil {
			return nil, err
		}
	}
	if m == nil {
		return nil, fmt.Errorf("model not found: %s", ident)
	}
	return m, nil
}

func runModelsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := catalog.ListOptions{
		ActiveOnly:    listActive,
		PublishedOnly: listPublished,
		Limit:         listLimit,
		Offset:        listOffset,
	}
	if listSegment != "" {
		opts.Segment = &listSegment
	}

	models, err := db.ListModels(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	if models == nil {
		models = []catalog.Model{}
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, models)
}

func runModelsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := findModel(ctx, db, args[0])
	if err != nil {
		return err
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, m)
}

func runModelsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m := &catalog.Model{
		Name:               args[0],
		Segment:            addSegment,
		Stock:              addStock,
		TestDriveAvailable: addTestDrive,
		Active:             !addInactive,
		Published:          !addUnpublished,
	}
	if addYear != 0 {
		year := addYear
		m.Year = &year
	}

	if err := db.CreateModel(ctx, m); err != nil {
		return fmt.Errorf("failed to add model: %w", err)
	}

	logger.Info().Str("id", m.ID).Str("name", m.Name).Msg("model added")
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, m)
}

func runModelsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := findModel(ctx, db, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		m.Name = updateName
	}
	if flags.Changed("segment") {
		m.Segment = updateSegment
	}
	if flags.Changed("year") {
		if updateYear == 0 {
			m.Year = nil
		} else {
			year := updateYear
			m.Year = &year
		}
	}
	if flags.Changed("stock") {
		m.Stock = updateStock
	}
	if flags.Changed("test-drive") {
		m.TestDriveAvailable = updateTestDrive
	}
	if flags.Changed("active") {
		m.Active = updateActive
	}
	if flags.Changed("published") {
		m.Published = updatePublished
	}

	if err := db.UpdateModel(ctx, m); err != nil {
		return fmt.Errorf("failed to update model: %w", err)
	}

	logger.Info().Str("id", m.ID).Str("name", m.Name).Msg("model updated")
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, m)
}

func runModelsRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := findModel(ctx, db, args[0])
	if err != nil {
		return err
	}

	if err := db.DeleteModel(ctx, m.ID); err != nil {
		return fmt.Errorf("failed to remove model: %w", err)
	}

	logger.Info().Str("id", m.ID).Str("name", m.Name).Msg("model removed")
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", m.Name)
	return nil
}
