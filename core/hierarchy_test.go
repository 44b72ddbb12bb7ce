package core

import (
	"testing"

	"github.com/locusproject/locus/internal/dataio"
	"github.com/locusproject/locus/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groupLevel builds a raw group level whose elements name child levels.
func groupLevel(id, label string, childIDs ...string) dataio.RawLevel {
	level := dataio.RawLevel{ID: id, Label: label}
	for _, child := range childIDs {
		level.Elements = append(level.Elements, dataio.RawElement{ChildID: child})
	}
	return level
}

// leafLevel builds a raw leaf level from criterion definitions.
func leafLevel(id, label string, criteria ...dataio.RawCriterion) dataio.RawLevel {
	level := dataio.RawLevel{ID: id, Label: label}
	for i := range criteria {
		level.Elements = append(level.Elements, dataio.RawElement{Criterion: &criteria[i]})
	}
	return level
}

func criterion(code, label string) dataio.RawCriterion {
	return dataio.RawCriterion{Code: code, Label: label}
}

// TestParseHierarchy tests parsing a well-formed two-pillar definition.
func TestParseHierarchy(t *testing.T) {
	levels := []dataio.RawLevel{
		groupLevel("top", "Best location", "env", "econ"),
		leafLevel("env", "Environmental",
			dataio.RawCriterion{
				Code:        "co2_pc",
				Label:       "CO2 per capita",
				Description: "Annual emissions per person",
				Year:        "2021",
				SourceShort: "OWID",
				SourceLong:  "Our World in Data, 2021 release",
			},
			criterion("renewables", "Renewable share")),
		leafLevel("econ", "Economic", criterion("gdp_pc", "GDP per capita")),
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	assert.Equal(t, "Best location", h.Goal)
	require.Len(t, h.Pillars, 2)
	assert.Equal(t, "env", h.Pillars[0].ID)
	assert.Equal(t, "Environmental", h.Pillars[0].Label)
	assert.Equal(t, "econ", h.Pillars[1].ID)
	assert.Equal(t, []string{"co2_pc", "renewables", "gdp_pc"}, h.CriterionCodes())
	assert.Zero(t, events.Len())

	co2 := h.Pillars[0].Criteria[0]
	assert.Equal(t, "CO2 per capita", co2.Label)
	assert.Equal(t, "Annual emissions per person", co2.Description)
	assert.Equal(t, "2021", co2.Year)
	assert.Equal(t, "OWID", co2.SourceShort)
	assert.Equal(t, "Our World in Data, 2021 release", co2.SourceLong)
}

// TestParseHierarchyStructureErrors tests the fatal no-usable-top cases.
func TestParseHierarchyStructureErrors(t *testing.T) {
	tests := []struct {
		name   string
		levels []dataio.RawLevel
	}{
		{
			name:   "no levels at all",
			levels: nil,
		},
		{
			name: "no top level",
			levels: []dataio.RawLevel{
				leafLevel("env", "Environmental", criterion("co2_pc", "CO2")),
			},
		},
		{
			name: "top is a criteria level",
			levels: []dataio.RawLevel{
				leafLevel("top", "Goal", criterion("co2_pc", "CO2")),
			},
		},
		{
			name: "top dropped for missing label",
			levels: []dataio.RawLevel{
				groupLevel("top", "", "env"),
				leafLevel("env", "Environmental", criterion("co2_pc", "CO2")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHierarchy(tt.levels, nil)
			var structErr *schema.StructureError
			require.ErrorAs(t, err, &structErr)
			assert.True(t, h.IsEmpty())
		})
	}
}

// TestParseHierarchySkipsMalformedLevels tests that broken levels drop out
// with a diagnostic while the rest still loads.
func TestParseHierarchySkipsMalformedLevels(t *testing.T) {
	levels := []dataio.RawLevel{
		groupLevel("top", "Goal", "env"),
		{Label: "No id", Elements: []dataio.RawElement{{ChildID: "x"}}},
		{ID: "nolabel", Elements: []dataio.RawElement{{ChildID: "x"}}},
		{ID: "empty", Label: "No elements"},
		leafLevel("env", "Environmental", criterion("co2_pc", "CO2")),
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	require.Len(t, h.Pillars, 1)
	assert.Equal(t, "env", h.Pillars[0].ID)
	assert.Equal(t, 3, events.Len())
	for _, e := range events.Events() {
		assert.Equal(t, schema.SkippedEntry, e.Kind)
		assert.Contains(t, e.Detail, "missing id, label or elements")
	}
}

// TestParseHierarchyDuplicateLevelID tests that the first level wins.
func TestParseHierarchyDuplicateLevelID(t *testing.T) {
	levels := []dataio.RawLevel{
		groupLevel("top", "Goal", "env"),
		leafLevel("env", "First", criterion("co2_pc", "CO2")),
		leafLevel("env", "Second", criterion("gdp_pc", "GDP")),
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	require.Len(t, h.Pillars, 1)
	assert.Equal(t, "First", h.Pillars[0].Label)
	assert.Equal(t, []string{"co2_pc"}, h.CriterionCodes())
	assert.True(t, events.Has(schema.SkippedEntry))
}

// TestParseHierarchyTopElements tests skipping of unusable top elements.
func TestParseHierarchyTopElements(t *testing.T) {
	co2 := criterion("co2_pc", "CO2")
	levels := []dataio.RawLevel{
		{ID: "top", Label: "Goal", Elements: []dataio.RawElement{
			{ChildID: "ghost"},        // names no level
			{Criterion: &co2},         // criteria belong in leaf levels
			{ChildID: "nested"},       // group under group
			{ChildID: "env"},          // the only usable pillar
		}},
		groupLevel("nested", "Nested group", "env"),
		leafLevel("env", "Environmental", criterion("renewables", "Renewables")),
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	require.Len(t, h.Pillars, 1)
	assert.Equal(t, "env", h.Pillars[0].ID)

	details := make([]string, 0, events.Len())
	for _, e := range events.Events() {
		assert.Equal(t, schema.TopLevelID, e.Scope)
		details = append(details, e.Detail)
	}
	require.Len(t, details, 3)
	assert.Contains(t, details[0], "unknown level")
	assert.Contains(t, details[1], "must be child level ids")
	assert.Contains(t, details[2], "nested groups are not supported")
}

// TestParseHierarchyCriterionValidation tests per-criterion skipping.
func TestParseHierarchyCriterionValidation(t *testing.T) {
	levels := []dataio.RawLevel{
		groupLevel("top", "Goal", "env", "econ"),
		leafLevel("env", "Environmental",
			criterion("", "No code"),
			criterion("nolabel", ""),
			criterion("co2_pc", "CO2")),
		// every criterion invalid, so the whole pillar drops
		leafLevel("econ", "Economic", criterion("", "")),
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	require.Len(t, h.Pillars, 1)
	assert.Equal(t, []string{"co2_pc"}, h.CriterionCodes())

	kinds := 0
	for _, e := range events.Events() {
		if e.Kind == schema.SkippedEntry {
			kinds++
		}
	}
	assert.Equal(t, 4, kinds) // two env criteria, one econ criterion, econ pillar
}

// TestParseHierarchyMixedLeafElements tests that stray child ids inside a
// criteria level are skipped.
func TestParseHierarchyMixedLeafElements(t *testing.T) {
	co2 := criterion("co2_pc", "CO2")
	levels := []dataio.RawLevel{
		groupLevel("top", "Goal", "env"),
		{ID: "env", Label: "Environmental", Elements: []dataio.RawElement{
			{Criterion: &co2},
			{ChildID: "stray"},
		}},
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	assert.Equal(t, []string{"co2_pc"}, h.CriterionCodes())
	require.Equal(t, 1, events.Len())
	assert.Equal(t, "env", events.Events()[0].Scope)
	assert.Contains(t, events.Events()[0].Detail, "criterion definitions")
}

// TestParseHierarchyDuplicateCriterionCodes tests the global code namespace.
func TestParseHierarchyDuplicateCriterionCodes(t *testing.T) {
	levels := []dataio.RawLevel{
		groupLevel("top", "Goal", "env", "econ"),
		leafLevel("env", "Environmental", criterion("shared", "First definition")),
		leafLevel("econ", "Economic",
			criterion("shared", "Second definition"),
			criterion("gdp_pc", "GDP")),
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	assert.Equal(t, []string{"shared", "gdp_pc"}, h.CriterionCodes())
	found, ok := h.FindCriterion("shared")
	require.True(t, ok)
	assert.Equal(t, "First definition", found.Label)

	require.Equal(t, 1, events.Len())
	e := events.Events()[0]
	assert.Equal(t, "econ", e.Scope)
	assert.Contains(t, e.Detail, `already defined under "env"`)
}

// TestParseHierarchyAllPillarsSkipped tests that a valid top whose pillars
// all drop still parses without a structure error.
func TestParseHierarchyAllPillarsSkipped(t *testing.T) {
	levels := []dataio.RawLevel{
		groupLevel("top", "Goal", "ghost1", "ghost2"),
	}

	events := &schema.EventLog{}
	h, err := ParseHierarchy(levels, events)
	require.NoError(t, err)

	assert.True(t, h.IsEmpty())
	assert.Equal(t, "Goal", h.Goal)
	assert.Equal(t, 2, events.Len())
}
