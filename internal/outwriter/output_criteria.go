package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	criteriaLabelWidth       = 24
	criteriaDescriptionWidth = 40
)

// WriteCriteriaResults outputs the criteria documentation, dispatching based
// on the output format configured.
func WriteCriteriaResults(w io.Writer, report *schema.CriteriaReport, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForCriteria(w, report); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		contract.LogEvents(report.Events)
	default:
		// Default to human-readable table
		return writeCriteriaTable(w, report, cfg)
	}
	return nil
}

// writeCriteriaTable generates and writes the criteria documentation table.
// Detail mode adds the description column and swaps the short source
// attribution for the full citation.
func writeCriteriaTable(w io.Writer, report *schema.CriteriaReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Code", "Label", "Pillar"}
	if cfg.Detail {
		headers = append(headers, "Description")
	}
	headers = append(headers, "Year", "Source", "Selected", "Data")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, doc := range report.Criteria {
		row := []string{
			doc.Code,
			contract.TruncateLabel(doc.Label, criteriaLabelWidth),
			doc.Pillar,
		}
		if cfg.Detail {
			row = append(row, contract.TruncateLabel(doc.Description, criteriaDescriptionWidth))
		}
		source := doc.SourceShort
		if cfg.Detail && doc.SourceLong != "" {
			source = doc.SourceLong
		}
		row = append(row,
			doc.Year,
			source,
			formatSelected(doc.Selected),
			fmt.Sprintf("%d/%d", doc.WithData, doc.Total),
		)
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	selected := 0
	for _, doc := range report.Criteria {
		if doc.Selected {
			selected++
		}
	}
	if _, err := fmt.Fprintf(w, "Showing %d criteria for %q (%d selected)\n", len(report.Criteria), report.Goal, selected); err != nil {
		return err
	}
	return writeEventNotes(w, report.Events)
}

// writeCSVResultsForCriteria writes the criteria documentation in CSV format.
func writeCSVResultsForCriteria(w io.Writer, report *schema.CriteriaReport) error {
	header := []string{
		"code",
		"label",
		"pillar",
		"description",
		"year",
		"source_short",
		"source_long",
		"selected",
		"entities_with_data",
		"entities_total",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, doc := range report.Criteria {
			rec := []string{
				doc.Code,
				doc.Label,
				doc.Pillar,
				doc.Description,
				doc.Year,
				doc.SourceShort,
				doc.SourceLong,
				strconv.FormatBool(doc.Selected),
				strconv.Itoa(doc.WithData),
				strconv.Itoa(doc.Total),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatSelected renders a selection flag for table cells.
func formatSelected(selected bool) string {
	if selected {
		return "yes"
	}
	return "no"
}
