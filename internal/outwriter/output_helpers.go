package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(cfg *contract.Config, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s%s to %s\n", savePrefix(cfg), successMsg, cfg.OutputFile)
	}
	return nil
}

// savePrefix returns the emoji prefix for file-save messages when enabled.
func savePrefix(cfg *contract.Config) string {
	if cfg.UseEmojis {
		return "💾 "
	}
	return ""
}

// successMessage returns the file-save message for an output mode.
func successMessage(mode schema.OutputMode) string {
	switch mode {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.CSVOut:
		return "Wrote CSV"
	default:
		return "Wrote table"
	}
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// writeEventNotes appends recomputation events as footer notes after a table.
func writeEventNotes(w io.Writer, events []schema.Event) error {
	for _, e := range events {
		if _, err := fmt.Fprintf(w, "Note: %s\n", e.String()); err != nil {
			return err
		}
	}
	return nil
}

// contribution holds one criterion's share of a composite score.
type contribution struct {
	Code  string  // Criterion code, e.g. "co2_pc"
	Share float64 // Percentage share of the absolute score mass
}

const (
	contributionShareMinimum = 0.5
	topNContributors         = 3
)

// formatTopContributors computes the top criteria driving a composite score.
func formatTopContributors(parts map[string]float64) string {
	var total float64
	for _, v := range parts {
		total += math.Abs(v)
	}
	if total <= 0 {
		return "No contributors"
	}

	var contribs []contribution
	for code, v := range parts {
		share := math.Abs(v) / total * 100
		// Only include meaningful contributions
		if share >= contributionShareMinimum {
			contribs = append(contribs, contribution{Code: code, Share: share})
		}
	}
	if len(contribs) == 0 {
		return "No contributors"
	}

	// Largest share first; ties resolve by code so output is reproducible.
	sort.Slice(contribs, func(i, j int) bool {
		if contribs[i].Share != contribs[j].Share {
			return contribs[i].Share > contribs[j].Share
		}
		return contribs[i].Code < contribs[j].Code
	})

	limit := min(len(contribs), topNContributors)
	codes := make([]string, 0, limit)
	for i := range limit {
		codes = append(codes, contribs[i].Code)
	}
	return strings.Join(codes, " > ")
}
