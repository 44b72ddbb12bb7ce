package cmd

import (
	"os"

	"github.com/locusproject/locus/core"
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/outwriter"
	"github.com/spf13/cobra"
)

// checkCmd focused on data health gating.
var checkCmd = &cobra.Command{
	Use:   "check [data-path]",
	Short: "Enforce data coverage thresholds (fails build on violations)",
	Long: `Measure the health of a data table against the hierarchy and enforce thresholds.

Designed for CI integration around data pipelines - fails with a non-zero
exit code when coverage drops below acceptable levels. Ranking silently
treats missing cells as zero, so this is the guard that keeps a thin table
from masquerading as a real result.

Two gates are applied to the selected criteria:
- Coverage: every selected criterion must have data for at least
  --min-coverage (fraction) of the loaded entities
- Rows: at least --min-rows entities must survive the strict
  completeness drop

Examples:
  # Gate a refreshed data table before publishing
  locus check examples/data/data.csv --hierarchy examples/data/hierarchy.yaml

  # Demand near-complete coverage
  locus check data/countries.csv --min-coverage 0.9

  # Require a minimum ranking population
  locus check data/countries.csv --min-rows 20

  # Gate only the criteria a ranking will use
  locus check data/countries.csv --criteria "co2_pc,gdp_pc" --min-coverage 1.0`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.ExecuteCheck(cfg)
		if err != nil {
			contract.LogFatal("Cannot run data check", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteCheck(result, cfg); err != nil {
			contract.LogFatal("Cannot write check result", err)
		}
		// A failed gate fails the build after the report is written.
		if !result.Passed {
			os.Exit(1)
		}
	},
}
