package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/locusproject/locus/schema"
)

// LoadEntityTable reads a wide entity table from a CSV or Parquet file,
// chosen by extension. The identifier column is lifted onto the rows and
// never appears in Columns. Cells that are blank, not numeric, NaN or
// infinite read as missing measurements, and rows with a blank identifier
// are dropped.
func LoadEntityTable(path, idColumn string) (schema.EntityTable, error) {
	switch ext := formatOf(path); ext {
	case ".csv":
		return loadTableCSV(path, idColumn)
	case ".parquet":
		return loadTableParquet(path, idColumn)
	default:
		return schema.EntityTable{}, fmt.Errorf("unsupported entity table format %q (expected .csv or .parquet)", ext)
	}
}

func loadTableCSV(path, idColumn string) (schema.EntityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.EntityTable{}, fmt.Errorf("open entity table: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.EntityTable{}, &schema.MissingIdentifierError{Column: idColumn}
	}
	if err != nil {
		return schema.EntityTable{}, fmt.Errorf("read entity table header: %w", err)
	}

	idIndex := -1
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if name == idColumn && idIndex < 0 {
			idIndex = i
			continue
		}
		columns = append(columns, name)
	}
	if idIndex < 0 {
		return schema.EntityTable{}, &schema.MissingIdentifierError{Column: idColumn}
	}

	table := schema.EntityTable{Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.EntityTable{}, fmt.Errorf("read entity table row: %w", err)
		}

		id := strings.TrimSpace(record[idIndex])
		if id == "" {
			continue
		}

		row := schema.EntityRow{ID: id, Values: make(map[string]float64)}
		for i, cell := range record {
			if i == idIndex {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
				continue
			}
			row.Values[header[i]] = value
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
