package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// sessionTimeFormat renders session timestamps for tables and summaries.
const sessionTimeFormat = "2006-01-02 15:04:05"

// WriteSessionList outputs saved sessions, dispatching based on the output
// format configured. Records arrive ordered by most recent update.
func WriteSessionList(w io.Writer, records []schema.SessionRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, records); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForSessions(w, records); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeSessionTable(w, records)
	}
	return nil
}

// writeSessionTable generates and writes the human-readable session table.
func writeSessionTable(w io.Writer, records []schema.SessionRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "ID", "Criteria", "Entities", "Weights", "Strict", "Updated"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			r.Name,
			r.ID,
			summarizeAxis(r.Payload.Criteria),
			summarizeAxis(r.Payload.Entities),
			formatSelected(r.Payload.HasWeights()),
			formatStrict(r.Payload.Strict),
			r.UpdatedAt.Format(sessionTimeFormat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d saved sessions\n", len(records))
	return err
}

// writeCSVResultsForSessions writes the session list in CSV format.
func writeCSVResultsForSessions(w io.Writer, records []schema.SessionRecord) error {
	header := []string{
		"name",
		"id",
		"criteria",
		"entities",
		"has_weights",
		"strict",
		"created_at",
		"updated_at",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			rec := []string{
				r.Name,
				r.ID,
				summarizeAxis(r.Payload.Criteria),
				summarizeAxis(r.Payload.Entities),
				strconv.FormatBool(r.Payload.HasWeights()),
				formatStrict(r.Payload.Strict),
				r.CreatedAt.Format(sessionTimeFormat),
				r.UpdatedAt.Format(sessionTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSessionDetail outputs one saved session with its full payload.
func WriteSessionDetail(w io.Writer, record schema.SessionRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, record); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case schema.CSVOut:
		return fmt.Errorf("csv output is not supported for a single session")
	default:
		return writeSessionText(w, record)
	}
}

// writeSessionText writes the human-readable session summary.
func writeSessionText(w io.Writer, record schema.SessionRecord) error {
	if _, err := fmt.Fprintf(w, "Session: %s (%s)\n", record.Name, record.ID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Created: %s\n", record.CreatedAt.Format(sessionTimeFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Updated: %s\n", record.UpdatedAt.Format(sessionTimeFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Criteria: %s\n", summarizeAxis(record.Payload.Criteria)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Entities: %s\n", summarizeAxis(record.Payload.Entities)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Strict: %s\n", formatStrict(record.Payload.Strict)); err != nil {
		return err
	}
	if len(record.Payload.PillarWeights) > 0 {
		if _, err := fmt.Fprintf(w, "Pillar weights: %s\n", formatRawWeights(record.Payload.PillarWeights)); err != nil {
			return err
		}
	}
	if len(record.Payload.CriterionWeights) > 0 {
		if _, err := fmt.Fprintf(w, "Criterion weights: %s\n", formatNestedRawWeights(record.Payload.CriterionWeights)); err != nil {
			return err
		}
	}
	return nil
}

// summarizeAxis condenses one selection axis for list output. A nil map has
// no stored picks, which means everything participates.
func summarizeAxis(includes map[string]bool) string {
	if includes == nil {
		return "all"
	}
	picked := 0
	for _, ok := range includes {
		if ok {
			picked++
		}
	}
	return fmt.Sprintf("%d of %d", picked, len(includes))
}

// formatStrict renders the tri-state strict flag of a stored session.
func formatStrict(strict *bool) string {
	switch {
	case strict == nil:
		return "default"
	case *strict:
		return "on"
	default:
		return "off"
	}
}

// formatRawWeights renders raw weights as "key=value" pairs in key order.
func formatRawWeights(weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	for key := range weights {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, weights[key]))
	}
	return strings.Join(parts, " ")
}

// formatNestedRawWeights renders criterion weights as "pillar.code=value"
// pairs in key order.
func formatNestedRawWeights(weights map[string]map[string]float64) string {
	flat := make(map[string]float64)
	for pillar, byCode := range weights {
		for code, raw := range byCode {
			flat[pillar+"."+code] = raw
		}
	}
	return formatRawWeights(flat)
}
