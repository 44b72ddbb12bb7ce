package core

import (
	"errors"
	"fmt"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/dataio"
	"github.com/locusproject/locus/schema"
)

// CheckResultBuilder builds the data gate result using a builder pattern.
// Structure and identifier problems become recorded violations rather than
// errors, so one run reports everything it can; only unreadable inputs
// abort the build.
type CheckResultBuilder struct {
	cfg         *contract.Config
	events      *schema.EventLog
	hierarchy   schema.Hierarchy
	table       schema.EntityTable
	selected    []string
	filtered    schema.EntityTable
	coverage    map[string]int
	surviving   int
	violations  []schema.CheckViolation
	structureOK bool
	tableOK     bool
	result      *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for data gate results.
func NewCheckResultBuilder(cfg *contract.Config) *CheckResultBuilder {
	return &CheckResultBuilder{
		cfg:    cfg,
		events: &schema.EventLog{},
	}
}

// ValidateStructure loads and parses the hierarchy definition. A structure
// violation keeps the build going so the table rules still run.
func (b *CheckResultBuilder) ValidateStructure() (*CheckResultBuilder, error) {
	levels, err := dataio.LoadDefinitions(b.cfg.HierarchyPath)
	if err != nil {
		return nil, err
	}

	hierarchy, err := ParseHierarchy(levels, b.events)
	var structErr *schema.StructureError
	if errors.As(err, &structErr) {
		b.violations = append(b.violations, schema.CheckViolation{
			Rule:   schema.CheckRuleStructure,
			Detail: structErr.Error(),
		})
		return b, nil
	}
	if err != nil {
		return nil, err
	}

	b.hierarchy = hierarchy
	b.structureOK = true
	return b, nil
}

// ValidateIdentifier loads the entity table. A missing identifier column
// becomes a violation; the data rules are skipped since no rows loaded.
func (b *CheckResultBuilder) ValidateIdentifier() (*CheckResultBuilder, error) {
	table, err := dataio.LoadEntityTable(b.cfg.DataPath, b.cfg.IDColumn)
	var missing *schema.MissingIdentifierError
	if errors.As(err, &missing) {
		b.violations = append(b.violations, schema.CheckViolation{
			Rule:   schema.CheckRuleIdentifier,
			Detail: missing.Error(),
		})
		return b, nil
	}
	if err != nil {
		return nil, err
	}

	b.table = table
	b.tableOK = true
	return b, nil
}

// ComputeCoverage resolves the selection and checks per-criterion coverage
// among the participating entities against the configured minimum.
func (b *CheckResultBuilder) ComputeCoverage() *CheckResultBuilder {
	if !b.structureOK || !b.tableOK {
		return b
	}

	sel := BuildSelection(b.cfg, b.hierarchy, b.table, b.events)
	b.selected, b.filtered = ApplySelection(b.table, b.hierarchy, sel, false, b.events)

	total := len(b.filtered.Rows)
	b.coverage = make(map[string]int, len(b.selected))
	for _, code := range b.selected {
		for _, row := range b.filtered.Rows {
			if row.HasValue(code) {
				b.coverage[code]++
			}
		}
	}

	// With no participating entities coverage is undefined; the row rule
	// reports the real problem.
	if total == 0 {
		return b
	}

	for _, code := range b.selected {
		fraction := float64(b.coverage[code]) / float64(total)
		if fraction < b.cfg.MinCoverage {
			b.violations = append(b.violations, schema.CheckViolation{
				Rule:     schema.CheckRuleCoverage,
				Code:     code,
				Measured: fraction,
				Limit:    b.cfg.MinCoverage,
				Detail: fmt.Sprintf("criterion %q has data for %d of %d entities (%.0f%% < %.0f%%)",
					code, b.coverage[code], total, fraction*100, b.cfg.MinCoverage*100),
			})
		}
	}
	return b
}

// ComputeRows counts the rows that would survive a strict completeness
// drop over the selected criteria and checks them against the minimum.
func (b *CheckResultBuilder) ComputeRows() *CheckResultBuilder {
	if !b.structureOK || !b.tableOK {
		return b
	}

	for _, row := range b.filtered.Rows {
		if hasAllValues(row, b.selected) {
			b.surviving++
		}
	}
	if b.surviving < b.cfg.MinRows {
		b.violations = append(b.violations, schema.CheckViolation{
			Rule:     schema.CheckRuleRows,
			Measured: float64(b.surviving),
			Limit:    float64(b.cfg.MinRows),
			Detail: fmt.Sprintf("%d of %d rows survive the completeness drop, %d required",
				b.surviving, len(b.filtered.Rows), b.cfg.MinRows),
		})
	}
	return b
}

// BuildResult constructs the final CheckResult.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	b.result = &schema.CheckResult{
		Passed:        len(b.violations) == 0,
		Violations:    b.violations,
		Goal:          b.hierarchy.Goal,
		TotalEntities: len(b.table.Rows),
		TotalCriteria: len(b.hierarchy.CriterionCodes()),
		SelectedCodes: b.selected,
		SurvivingRows: b.surviving,
		Coverage:      b.coverage,
		MinCoverage:   b.cfg.MinCoverage,
		MinRows:       b.cfg.MinRows,
		Events:        b.events.Events(),
	}
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}
