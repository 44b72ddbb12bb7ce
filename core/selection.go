package core

import (
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
)

// BuildSelection resolves the include/exclude flag lists into inclusion
// maps against the known universes. An axis with no flag lists falls back
// to the maps merged from a saved session, and an axis with neither
// selects everything. Entries naming unknown codes or ids are dropped
// with a diagnostic event.
func BuildSelection(cfg *contract.Config, h schema.Hierarchy, table schema.EntityTable, events *schema.EventLog) schema.Selection {
	entityIDs := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		entityIDs = append(entityIDs, row.ID)
	}
	return schema.Selection{
		Criteria: buildAxis(cfg.IncludeCriteria, cfg.ExcludeCriteria, h.CriterionCodes(), cfg.Selection.Criteria, schema.CriteriaAxis, events),
		Entities: buildAxis(cfg.IncludeEntities, cfg.ExcludeEntities, entityIDs, cfg.Selection.Entities, schema.EntitiesAxis, events),
	}
}

// buildAxis turns one axis of flag lists into an inclusion map. An include
// list pins the whole universe explicitly so unlisted members are out; an
// exclude list only marks its members out. Without lists the session map
// passes through unchanged.
func buildAxis(include, exclude, universe []string, session map[string]bool, axis schema.SelectionAxis, events *schema.EventLog) map[string]bool {
	if len(include) == 0 && len(exclude) == 0 {
		return session
	}

	known := make(map[string]struct{}, len(universe))
	for _, key := range universe {
		known[key] = struct{}{}
	}

	selection := make(map[string]bool, len(universe))
	if len(include) > 0 {
		for _, key := range universe {
			selection[key] = false
		}
		for _, key := range include {
			if _, ok := known[key]; !ok {
				events.Addf(schema.SkippedEntry, string(axis), "unknown entry %q in include list", key)
				continue
			}
			selection[key] = true
		}
	}
	for _, key := range exclude {
		if _, ok := known[key]; !ok {
			events.Addf(schema.SkippedEntry, string(axis), "unknown entry %q in exclude list", key)
			continue
		}
		selection[key] = false
	}
	return selection
}

// ApplySelection filters the entity table down to the criteria and
// entities participating in this run. It returns the selected criterion
// codes in hierarchy order plus a fresh table restricted to those codes.
//
// Availability comes first: only codes both defined in the hierarchy and
// present as table columns can be selected. When a selection empties an
// axis that still has members available, the axis reverts to everything
// available and an event records the fallback. Strict mode then drops
// rows missing a value for any selected code; an empty strict result is
// real data scarcity and never triggers a fallback.
func ApplySelection(table schema.EntityTable, h schema.Hierarchy, sel schema.Selection, strict bool, events *schema.EventLog) ([]string, schema.EntityTable) {
	columns := make(map[string]struct{}, len(table.Columns))
	for _, col := range table.Columns {
		columns[col] = struct{}{}
	}
	selected := selectCriteria(h, columns, sel, events)

	rows := make([]schema.EntityRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		if sel.EntityIncluded(row.ID) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 && len(table.Rows) > 0 {
		rows = append(rows, table.Rows...)
		events.Addf(schema.EmptySelectionFallback, string(schema.EntitiesAxis),
			"selection left no entities, reverting to all %d rows", len(table.Rows))
	}

	filtered := schema.EntityTable{Columns: selected}
	for _, row := range rows {
		if strict && !hasAllValues(row, selected) {
			continue
		}
		filtered.Rows = append(filtered.Rows, restrictRow(row, selected))
	}
	return selected, filtered
}

// selectCriteria applies the criteria axis of a selection to the codes in
// columns, returning the survivors in hierarchy order. Two fallbacks keep
// the result usable: an emptied axis reverts to everything available, and
// a pillar whose available criteria are all deselected reverts to its full
// available set. The second rule keeps every participating pillar's
// normalization scope non-empty; only pillars with no available criteria
// at all stay out, and their weight mass redistributes.
func selectCriteria(h schema.Hierarchy, columns map[string]struct{}, sel schema.Selection, events *schema.EventLog) []string {
	var available []string
	for _, code := range h.CriterionCodes() {
		if _, ok := columns[code]; ok {
			available = append(available, code)
		}
	}

	selectedSet := make(map[string]struct{}, len(available))
	for _, code := range available {
		if sel.CriterionIncluded(code) {
			selectedSet[code] = struct{}{}
		}
	}
	if len(selectedSet) == 0 && len(available) > 0 {
		for _, code := range available {
			selectedSet[code] = struct{}{}
		}
		events.Addf(schema.EmptySelectionFallback, string(schema.CriteriaAxis),
			"selection left no usable criteria, reverting to all %d available", len(available))
	}

	for _, pillar := range h.Pillars {
		var pillarAvail []string
		covered := false
		for _, criterion := range pillar.Criteria {
			if _, ok := columns[criterion.Code]; !ok {
				continue
			}
			pillarAvail = append(pillarAvail, criterion.Code)
			if _, ok := selectedSet[criterion.Code]; ok {
				covered = true
			}
		}
		if covered || len(pillarAvail) == 0 {
			continue
		}
		for _, code := range pillarAvail {
			selectedSet[code] = struct{}{}
		}
		events.Addf(schema.EmptySelectionFallback, schema.CriterionScope(pillar.ID),
			"selection left no criteria under pillar %q, reverting to all %d available", pillar.ID, len(pillarAvail))
	}

	selected := make([]string, 0, len(selectedSet))
	for _, code := range available {
		if _, ok := selectedSet[code]; ok {
			selected = append(selected, code)
		}
	}
	return selected
}

// selectDefinedCriteria filters hierarchy codes by the criteria selection
// alone, for flows that run without an entity table. Every defined code
// counts as available.
func selectDefinedCriteria(h schema.Hierarchy, sel schema.Selection, events *schema.EventLog) []string {
	defined := make(map[string]struct{})
	for _, code := range h.CriterionCodes() {
		defined[code] = struct{}{}
	}
	return selectCriteria(h, defined, sel, events)
}

// hasAllValues reports whether the row carries a measurement for every code.
func hasAllValues(row schema.EntityRow, codes []string) bool {
	for _, code := range codes {
		if !row.HasValue(code) {
			return false
		}
	}
	return true
}

// restrictRow copies a row keeping only the given codes, so the filtered
// table never aliases the source.
func restrictRow(row schema.EntityRow, codes []string) schema.EntityRow {
	out := schema.EntityRow{ID: row.ID, Values: make(map[string]float64, len(codes))}
	for _, code := range codes {
		if v, ok := row.Values[code]; ok {
			out.Values[code] = v
		}
	}
	return out
}
