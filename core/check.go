package core

import (
	"errors"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
)

// ExecuteCheck runs the data gate for CI gating and pre-flight validation.
// It checks hierarchy structure, the identifier column, per-criterion
// coverage and the surviving row count, and reports all violations in one
// pass. Callers inspect Passed to decide the exit code; a failed gate is
// a result here, not an error.
func ExecuteCheck(cfg *contract.Config) (*schema.CheckResult, error) {
	if cfg.DataPath == "" {
		return nil, errors.New("entity table path is required")
	}

	builder := NewCheckResultBuilder(cfg)
	if _, err := builder.ValidateStructure(); err != nil {
		return nil, err
	}
	if _, err := builder.ValidateIdentifier(); err != nil {
		return nil, err
	}
	builder.ComputeCoverage().ComputeRows().BuildResult()
	return builder.GetResult(), nil
}
