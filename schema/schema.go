// Package schema has configs, models and global variables for all parts of locus.
package schema

import "maps"

// Criterion is a single measurable indicator at the leaf level of the hierarchy.
// The code doubles as the column name in entity tables, so it must be unique
// across all pillars.
type Criterion struct {
	Code        string // Column code in entity tables, e.g. "co2_pc"
	Label       string // Human-readable name shown in tables
	Description string // Optional long-form explanation of the indicator
	Year        string // Optional reference year of the underlying data
	SourceShort string // Optional short source attribution
	SourceLong  string // Optional full source citation
}

// Pillar groups related criteria directly under the decision goal.
type Pillar struct {
	ID       string      // Level id referenced by the top group
	Label    string      // Human-readable pillar name
	Criteria []Criterion // Criteria in declaration order
}

// Hierarchy is the parsed two-level decision structure: one goal,
// ordered pillars, ordered criteria per pillar. It is immutable after
// parsing; recomputation never mutates it.
type Hierarchy struct {
	Goal    string   // Label of the top group
	Pillars []Pillar // Pillars in top-group declaration order
}

// IsEmpty reports whether the hierarchy has no pillars, which is the
// well-typed result of a failed parse.
func (h Hierarchy) IsEmpty() bool {
	return len(h.Pillars) == 0
}

// CriterionCodes returns all criterion codes in hierarchy declaration order.
func (h Hierarchy) CriterionCodes() []string {
	var codes []string
	for _, p := range h.Pillars {
		for _, c := range p.Criteria {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

// PillarOf returns the pillar containing the given criterion code.
func (h Hierarchy) PillarOf(code string) (Pillar, bool) {
	for _, p := range h.Pillars {
		for _, c := range p.Criteria {
			if c.Code == code {
				return p, true
			}
		}
	}
	return Pillar{}, false
}

// FindCriterion returns the criterion with the given code.
func (h Hierarchy) FindCriterion(code string) (Criterion, bool) {
	for _, p := range h.Pillars {
		for _, c := range p.Criteria {
			if c.Code == code {
				return c, true
			}
		}
	}
	return Criterion{}, false
}

// EntityRow holds one entity's indicator values keyed by criterion code.
// A missing measurement is an absent key, never a stored zero.
type EntityRow struct {
	ID     string             // Entity identifier, e.g. ISO country code
	Values map[string]float64 // Code to measured value, missing codes absent
}

// HasValue reports whether the row has a measurement for the given code.
func (r EntityRow) HasValue(code string) bool {
	_, ok := r.Values[code]
	return ok
}

// EntityTable is a wide table of entities by criterion codes. The identifier
// lives on the rows, never in Columns.
type EntityTable struct {
	Columns []string    // Criterion codes present in the table
	Rows    []EntityRow // One row per entity
}

// IsEmpty reports whether the table has no rows.
func (t EntityTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// HasColumn reports whether the table carries the given criterion code.
func (t EntityTable) HasColumn(code string) bool {
	for _, col := range t.Columns {
		if col == code {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so filtering never aliases the source table.
func (t EntityTable) Clone() EntityTable {
	out := EntityTable{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]EntityRow, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		out.Rows[i] = EntityRow{ID: row.ID, Values: maps.Clone(row.Values)}
	}
	return out
}

// Selection captures which criteria and entities participate in a run.
// A missing key means included, so the zero value selects everything.
type Selection struct {
	Criteria map[string]bool // Criterion code to inclusion flag
	Entities map[string]bool // Entity id to inclusion flag
}

// CriterionIncluded reports whether the criterion participates.
func (s Selection) CriterionIncluded(code string) bool {
	v, ok := s.Criteria[code]
	return !ok || v
}

// EntityIncluded reports whether the entity participates.
func (s Selection) EntityIncluded(id string) bool {
	v, ok := s.Entities[id]
	return !ok || v
}

// Clone returns an independent copy of the selection maps.
func (s Selection) Clone() Selection {
	return Selection{
		Criteria: maps.Clone(s.Criteria),
		Entities: maps.Clone(s.Entities),
	}
}

// WeightItem pairs a key with its raw, unnormalized weight.
type WeightItem struct {
	Key string  // Pillar id or criterion code
	Raw float64 // Non-negative raw weight as entered
}

// WeightScope is an ordered set of raw weights for one normalization pass,
// either the pillar scope or the criterion scope of a single pillar.
type WeightScope struct {
	Name  string       // Scope name used in fallback events
	Items []WeightItem // Items in declaration order
}

// ScoreRow is one entity's composite score with per-criterion parts.
type ScoreRow struct {
	ID    string             // Entity identifier
	Score float64            // Weighted sum over global weights
	Parts map[string]float64 // Per-code contribution to Score
}

// EntityName is a display lookup entry for one entity id.
type EntityName struct {
	Name   string // Human-readable name
	Region string // Grouping region, FallbackRegion when unknown
}

// RankedEntity is one row of the final ranking.
type RankedEntity struct {
	Rank   int                `json:"rank"`            // 1-based position after tie-break
	ID     string             `json:"id"`              // Entity identifier
	Name   string             `json:"name"`            // Display name, falls back to ID
	Region string             `json:"region"`          // Region from the name lookup
	Score  float64            `json:"score"`           // Composite score
	Parts  map[string]float64 `json:"parts,omitempty"` // Per-code contribution, for explain output
}
