package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// weightRow is one flattened line of the weights table: a criterion with
// every weight stage along its hierarchy path.
type weightRow struct {
	Code       string
	Pillar     string
	PillarW    float64
	CriterionW float64
	GlobalW    float64
}

// WriteWeightsResults outputs normalized weights, dispatching based on the
// output format configured.
func WriteWeightsResults(w io.Writer, report *schema.WeightReport, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForWeights(w, report, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		contract.LogEvents(report.Events)
	default:
		// Default to human-readable table
		return writeWeightsTable(w, report, cfg, fmtFloat)
	}
	return nil
}

// flattenWeights turns the per-scope weight maps into table rows ordered by
// global weight, heaviest first. Ties resolve by criterion code so repeated
// runs print identically.
func flattenWeights(report *schema.WeightReport) []weightRow {
	var rows []weightRow
	for pillar, byCode := range report.Criteria {
		for code, cw := range byCode {
			rows = append(rows, weightRow{
				Code:       code,
				Pillar:     pillar,
				PillarW:    report.Pillars[pillar],
				CriterionW: cw,
				GlobalW:    report.Global[code],
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GlobalW != rows[j].GlobalW {
			return rows[i].GlobalW > rows[j].GlobalW
		}
		return rows[i].Code < rows[j].Code
	})
	return rows
}

// writeWeightsTable generates and writes the human-readable weights table.
func writeWeightsTable(w io.Writer, report *schema.WeightReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Criterion", "Pillar", "Pillar W", "Criterion W", "Global W"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range flattenWeights(report) {
		data = append(data, []string{
			row.Code,
			row.Pillar,
			fmtFloat(row.PillarW),
			fmtFloat(row.CriterionW),
			fmtFloat(row.GlobalW),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Weights for %q over %d pillars\n", report.Goal, len(report.Pillars)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Global weights sum to %s across %d criteria\n", fmtFloat(report.Sum), len(report.Global)); err != nil {
		return err
	}
	return writeEventNotes(w, report.Events)
}

// writeCSVResultsForWeights writes the weights in CSV format.
func writeCSVResultsForWeights(w io.Writer, report *schema.WeightReport, fmtFloat func(float64) string) error {
	header := []string{
		"criterion",
		"pillar",
		"pillar_weight",
		"criterion_weight",
		"global_weight",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range flattenWeights(report) {
			rec := []string{
				row.Code,
				row.Pillar,
				fmtFloat(row.PillarW),
				fmtFloat(row.CriterionW),
				fmtFloat(row.GlobalW),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
