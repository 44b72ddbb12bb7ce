package algo

import (
	"sort"

	"github.com/locusproject/locus/schema"
)

// GlobalWeights composes normalized pillar and criterion weights into one
// flat weight per criterion code by multiplying along the hierarchy path.
// Pillars absent from pillarWeights and criteria absent from their pillar's
// map contribute nothing; their mass was already redistributed when the
// normalization scopes were built. When every pillar in pillarWeights has a
// non-empty criterion map, the results sum to one.
func GlobalWeights(h schema.Hierarchy, pillarWeights map[string]float64, criterionWeights map[string]map[string]float64) map[string]float64 {
	global := make(map[string]float64)
	for _, pillar := range h.Pillars {
		pw, ok := pillarWeights[pillar.ID]
		if !ok {
			continue
		}
		cws := criterionWeights[pillar.ID]
		for _, criterion := range pillar.Criteria {
			cw, ok := cws[criterion.Code]
			if !ok {
				continue
			}
			global[criterion.Code] = pw * cw
		}
	}
	return global
}

// ScoreEntities computes one weighted sum per table row over the global
// weights. A cell missing from a row contributes exactly zero, and a
// weighted code missing from the table is a no-op for every row. Codes are
// accumulated in sorted order so repeated runs reproduce scores
// bit-for-bit.
func ScoreEntities(table schema.EntityTable, global map[string]float64) []schema.ScoreRow {
	cols := make(map[string]struct{}, len(table.Columns))
	for _, c := range table.Columns {
		cols[c] = struct{}{}
	}

	codes := make([]string, 0, len(global))
	for code := range global {
		if _, ok := cols[code]; ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	rows := make([]schema.ScoreRow, len(table.Rows))
	for i, row := range table.Rows {
		parts := make(map[string]float64, len(codes))
		var score float64
		for _, code := range codes {
			part := row.Values[code] * global[code] // missing cells read as zero
			parts[code] = part
			score += part
		}
		rows[i] = schema.ScoreRow{ID: row.ID, Score: score, Parts: parts}
	}
	return rows
}
