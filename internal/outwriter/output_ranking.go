package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRankingResults outputs a ranking report, dispatching based on the
// output format configured. Parquet is handled by the facade because it
// needs a file path rather than a writer.
func WriteRankingResults(w io.Writer, report *schema.RankReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForRanking(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForRanking(w, report, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		// Events cannot ride along in CSV, so they go to stderr
		contract.LogEvents(report.Events)
	default:
		// Default to human-readable table
		return writeRankingTable(w, report, cfg, fmtFloat, duration)
	}
	return nil
}

// writeRankingTable generates and writes the human-readable ranking table.
func writeRankingTable(w io.Writer, report *schema.RankReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Rank", "ID", "Name", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Region")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var best float64
	if len(report.Entities) > 0 {
		best = report.Entities[0].Score
	}
	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, e := range report.Entities {
		label := schema.RelativeLabel(e.Score, best)
		if cfg.UseColors {
			label = contract.GetColorLabel(e.Score, best)
		}
		row := []string{
			strconv.Itoa(e.Rank),
			e.ID,
			contract.TruncateLabel(e.Name, nameWidth),
			fmtFloat(e.Score),
			label,
		}
		if cfg.Detail {
			row = append(row, e.Region)
		}
		if cfg.Explain {
			row = append(row, formatTopContributors(e.Parts))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	if _, err := fmt.Fprintf(w, "Showing top %d entities for %q\n", len(report.Entities), report.Goal); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ranking completed in %v across %d criteria (strict=%t)\n", duration, len(report.Selected), report.Strict); err != nil {
		return err
	}
	return writeEventNotes(w, report.Events)
}

// writeCSVResultsForRanking writes the ranking in CSV format.
func writeCSVResultsForRanking(w io.Writer, report *schema.RankReport, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"id",
		"name",
		"region",
		"score",
		"label",
	}
	var best float64
	if len(report.Entities) > 0 {
		best = report.Entities[0].Score
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range report.Entities {
			rec := []string{
				strconv.Itoa(e.Rank),
				e.ID,
				e.Name,
				e.Region,
				fmtFloat(e.Score),
				schema.RelativeLabel(e.Score, best),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForRanking writes the ranking in JSON format.
func writeJSONResultsForRanking(w io.Writer, report *schema.RankReport) error {
	// 1. Prepare the data structure for JSON with labels added
	type JSONRankReport struct {
		Goal     string                        `json:"goal"`
		Strict   bool                          `json:"strict"`
		Selected []string                      `json:"selected_criteria"`
		Global   map[string]float64            `json:"global_weights"`
		Entities []schema.EnrichedRankedEntity `json:"entities"`
		Events   []schema.Event                `json:"events,omitempty"`
	}

	output := JSONRankReport{
		Goal:     report.Goal,
		Strict:   report.Strict,
		Selected: report.Selected,
		Global:   report.Global,
		Entities: schema.EnrichRanking(report.Entities),
		Events:   report.Events,
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
