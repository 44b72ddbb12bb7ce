package cmd

import (
	"github.com/locusproject/locus/core"
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/outwriter"
	"github.com/spf13/cobra"
)

// criteriaCmd documents the criteria defined by the hierarchy.
var criteriaCmd = &cobra.Command{
	Use:   "criteria [data-path]",
	Short: "List every defined criterion with selection state and coverage.",
	Long: `Document the criteria the hierarchy defines, one row per criterion.

Each row shows the criterion's pillar, its selection state under the current
flags, and how many entities actually carry data for it. Add --detail for
the measurement year and data source columns.

Use this to:
- Discover which codes are available for --criteria and weight flags
- See which criteria a selection actually keeps
- Find sparsely covered criteria before trusting a ranking

A data table is optional; without one the coverage counts stay at zero.

Examples:
  # List all criteria for a hierarchy
  locus criteria --hierarchy examples/data/hierarchy.yaml

  # Include coverage counts from a data table
  locus criteria data/countries.csv

  # Show sources and years for an audit
  locus criteria data/countries.csv --detail

  # Inspect what a selection keeps
  locus criteria data/countries.csv --criteria "co2_pc,gdp_pc"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.ExecuteCriteria(cfg)
		if err != nil {
			contract.LogFatal("Cannot list criteria", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteCriteria(report, cfg); err != nil {
			contract.LogFatal("Cannot write criteria", err)
		}
	},
}
