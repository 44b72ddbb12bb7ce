package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCheckResults outputs a data gate verdict, dispatching based on the
// output format configured. The exit code is the caller's job; this only
// renders.
func WriteCheckResults(w io.Writer, result *schema.CheckResult, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForCheck(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		contract.LogEvents(result.Events)
	default:
		// Default to human-readable text with a violations table
		return writeCheckText(w, result, cfg, fmtFloat)
	}
	return nil
}

// checkVerdict renders the pass or fail headline.
func checkVerdict(result *schema.CheckResult, cfg *contract.Config) string {
	if result.Passed {
		if cfg.UseEmojis {
			return "✅ Data check passed"
		}
		return "Data check passed"
	}
	if cfg.UseEmojis {
		return "❌ Data check failed"
	}
	return "Data check failed"
}

// writeCheckText writes the human-readable gate summary.
func writeCheckText(w io.Writer, result *schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "%s for %q\n", checkVerdict(result, cfg), result.Goal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Entities: %d loaded, %d surviving\n", result.TotalEntities, result.SurvivingRows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Criteria: %d defined, %d selected\n", result.TotalCriteria, len(result.SelectedCodes)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Thresholds: coverage >= %s, rows >= %d\n", fmtFloat(result.MinCoverage), result.MinRows); err != nil {
		return err
	}

	if len(result.Violations) > 0 {
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rule", "Criterion", "Measured", "Limit", "Detail"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})

		var data [][]string
		for _, v := range result.Violations {
			data = append(data, []string{
				v.Rule,
				v.Code,
				fmtFloat(v.Measured),
				fmtFloat(v.Limit),
				v.Detail,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	return writeEventNotes(w, result.Events)
}

// writeCSVResultsForCheck writes the gate violations in CSV format. A
// passing gate yields only the header row.
func writeCSVResultsForCheck(w io.Writer, result *schema.CheckResult, fmtFloat func(float64) string) error {
	header := []string{
		"rule",
		"criterion",
		"measured",
		"limit",
		"detail",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, v := range result.Violations {
			rec := []string{
				v.Rule,
				v.Code,
				fmtFloat(v.Measured),
				fmtFloat(v.Limit),
				v.Detail,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
