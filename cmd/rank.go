package cmd

import (
	"time"

	"github.com/locusproject/locus/core"
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/outwriter"
	"github.com/spf13/cobra"
)

// rankCmd performs the weighted comparison across entities.
var rankCmd = &cobra.Command{
	Use:   "rank [data-path]",
	Short: "Rank countries by their weighted scores.",
	Long: `Score every country in the data table and rank them from best fit to worst.

Data cells carry pre-normalized indicator values, typically each country's
share of a column total. Raw weights normalize to sum to one per pillar and
per criterion scope, and each country's values roll up through them into one
composite score, helping you:
- See which countries best match your stated priorities
- Check how sensitive the ordering is to your raw weights
- Spot countries that win one pillar and lose another
- Export the full ranking for downstream analysis

Strict mode (the default) drops countries with missing selected data before
scoring; with --strict=no they stay in and missing cells contribute zero.

Examples:
  # Rank the bundled sample with the default equal weights
  locus rank examples/data/data.csv --hierarchy examples/data/hierarchy.yaml --names examples/data/names.json

  # Double the environment pillar (hierarchy from .locus.yaml)
  locus rank data/countries.csv --pillar-weights "env:2,econ:1"

  # Focus on a criteria subset with a contribution breakdown
  locus rank data/countries.csv --criteria "co2_pc,gdp_pc" --explain

  # Keep incomplete rows in the ranking
  locus rank data/countries.csv --strict=no

  # Export findings to CSV for tracking
  locus rank data/countries.csv --output csv --output-file ranking.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		report, err := core.ExecuteRank(cfg)
		if err != nil {
			contract.LogFatal("Cannot run ranking", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteRanking(report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write ranking", err)
		}
	},
}
