package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/motomatch/internal/matcher"
	"github.com/vijay-prabhu/motomatch/internal/output"
	"github.com/vijay-prabhu/motomatch/internal/service"
)

var matchCmd = &cobra.Command{
	Use:   "match <query...>",
	Short: "Find the catalog model that best matches a request",
	Long: `Match a free-text customer request against the published catalog.

Examples:
  motomatch match mt 07 naked            # Name and segment
  motomatch match "doble propósito 2023" # Segment and year
  motomatch match r7 --explain           # Show how every score was built
  motomatch match xsr --year 2025 -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

var (
	matchYear    int
	matchExplain bool
)

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().IntVar(&matchYear, "year", 0, "Reference year for recency scoring (default: config or current year)")
	matchCmd.Flags().BoolVar(&matchExplain, "explain", false, "Show scoring reasons for each listed model")
}

func runMatch(cmd *cobra.Command, args []string) error {
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

	resolver := service.New(db, cfg.Matcher, service.WithLogger(logger))

	year := matchYear
	if year == 0 {
		year = resolver.ReferenceYear()
	}

	query := strings.Join(args, " ")
	result, err := resolver.ResolveWithYear(ctx, query, year)
	if err != nil && !errors.Is(err, matcher.ErrNoConfidentMatch) {
		return err
	}

	if outputFmt == output.FormatJSON {
		return output.JSONTo(cmd.OutOrStdout(), result)
	}
	return output.MatchResult(cmd.OutOrStdout(), result, matchExplain)
}
