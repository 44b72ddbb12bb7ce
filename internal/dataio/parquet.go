package dataio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/locusproject/locus/schema"
	"github.com/parquet-go/parquet-go"
)

// RankingRecord is one ranking row in the Parquet export schema.
// Column names match the JSON field names of schema.RankedEntity.
type RankingRecord struct {
	Rank   int32   `parquet:"rank,snappy"`
	ID     string  `parquet:"id,snappy"`
	Name   string  `parquet:"name,snappy"`
	Region string  `parquet:"region,snappy"`
	Score  float64 `parquet:"score,snappy"`
	Label  string  `parquet:"label,snappy"`
}

// ConvertRanking converts enriched ranking rows to Parquet export records.
func ConvertRanking(rows []schema.EnrichedRankedEntity) []RankingRecord {
	records := make([]RankingRecord, len(rows))
	for i, row := range rows {
		records[i] = RankingRecord{
			Rank:   int32(row.Rank),
			ID:     row.ID,
			Name:   row.Name,
			Region: row.Region,
			Score:  row.Score,
			Label:  row.Label,
		}
	}
	return records
}

// WriteRankingParquet writes ranking records to a Parquet file.
func WriteRankingParquet(records []RankingRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the RankingRecord struct tags.
	writer := parquet.NewGenericWriter[RankingRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// loadTableParquet reads a wide entity table from a Parquet file. The file
// schema is discovered at runtime, so any flat table with the identifier
// column works; numeric leaf columns become measurements, null cells stay
// missing.
func loadTableParquet(path, idColumn string) (schema.EntityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.EntityTable{}, fmt.Errorf("open entity table: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return schema.EntityTable{}, fmt.Errorf("stat entity table: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return schema.EntityTable{}, fmt.Errorf("open parquet file: %w", err)
	}

	// Leaf columns in file order; nested paths are not wide-table columns.
	paths := pf.Schema().Columns()
	leafNames := make([]string, len(paths))
	idIndex := -1
	columns := make([]string, 0, len(paths))
	for i, path := range paths {
		if len(path) != 1 {
			continue
		}
		name := strings.TrimSpace(path[0])
		leafNames[i] = name
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
	for _, rowGroup := range pf.RowGroups() {
		rows, err := readParquetRowGroup(rowGroup, leafNames, idIndex)
		if err != nil {
			return schema.EntityTable{}, err
		}
		table.Rows = append(table.Rows, rows...)
	}
	return table, nil
}

func readParquetRowGroup(rowGroup parquet.RowGroup, leafNames []string, idIndex int) ([]schema.EntityRow, error) {
	rows := rowGroup.Rows()
	defer func() { _ = rows.Close() }()

	var out []schema.EntityRow
	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, pqRow := range buf[:n] {
			row := schema.EntityRow{Values: make(map[string]float64)}
			for _, value := range pqRow {
				col := value.Column()
				if col < 0 || col >= len(leafNames) || value.IsNull() {
					continue
				}
				if col == idIndex {
					row.ID = strings.TrimSpace(value.String())
					continue
				}
				name := leafNames[col]
				if name == "" {
					continue
				}
				if num, ok := numericValue(value); ok {
					row.Values[name] = num
				}
			}
			if row.ID == "" {
				continue
			}
			out = append(out, row)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
	}
}

// numericValue converts a physical Parquet value to a measurement.
// Non-numeric kinds and non-finite values do not count as measurements.
func numericValue(value parquet.Value) (float64, bool) {
	var num float64
	switch value.Kind() {
	case parquet.Double:
		num = value.Double()
	case parquet.Float:
		num = float64(value.Float())
	case parquet.Int32:
		num = float64(value.Int32())
	case parquet.Int64:
		num = float64(value.Int64())
	default:
		return 0, false
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}
