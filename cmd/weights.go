package cmd

import (
	"github.com/locusproject/locus/core"
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/outwriter"
	"github.com/spf13/cobra"
)

// weightsCmd resolves and displays the effective weight tree.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show normalized pillar, criterion, and global weights.",
	Long: `Resolve raw weights into the normalized values that scoring actually uses.

Raw weights never need to sum to anything. Each pillar's weight is divided
by the total across pillars, and each criterion's weight by the total within
its pillar. A criterion's global weight is its pillar share times its
within-pillar share, so the global column always sums to 1.

Use this to:
- Verify how 'env:2,econ:1' style input lands after normalization
- See how deselecting criteria redistributes their weight
- Sanity-check a saved session's weights before ranking with them

A data table is optional here; without one the resolution covers every
criterion the hierarchy defines.

Examples:
  # Show the default equal split
  locus weights --hierarchy examples/data/hierarchy.yaml

  # Preview a custom weighting
  locus weights --pillar-weights "env:3,econ:1"

  # Weights after dropping a criterion
  locus weights --exclude-criteria ren

  # Resolve the weights a saved session would use
  locus weights --session relocation-2026`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.ExecuteWeights(cfg)
		if err != nil {
			contract.LogFatal("Cannot resolve weights", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteWeights(report, cfg); err != nil {
			contract.LogFatal("Cannot write weights", err)
		}
	},
}
