package core

import (
	"fmt"

	"github.com/locusproject/locus/internal/dataio"
	"github.com/locusproject/locus/schema"
)

// parsedLevel is one usable level definition after basic validation.
type parsedLevel struct {
	label    string
	elements []dataio.RawElement
	leaf     bool
}

// ParseHierarchy validates raw level definitions into the two-level
// decision hierarchy. Malformed levels, elements and criteria are skipped
// with a diagnostic event instead of failing the parse; only the absence
// of a usable top group is fatal, reported as *schema.StructureError with
// an empty hierarchy.
func ParseHierarchy(raw []dataio.RawLevel, events *schema.EventLog) (schema.Hierarchy, error) {
	levels := collectLevels(raw, events)

	top, ok := levels[schema.TopLevelID]
	if !ok {
		return schema.Hierarchy{}, &schema.StructureError{Reason: fmt.Sprintf("no level with id %q", schema.TopLevelID)}
	}
	if top.leaf {
		return schema.Hierarchy{}, &schema.StructureError{Reason: fmt.Sprintf("level %q must list child levels, not criteria", schema.TopLevelID)}
	}

	hierarchy := schema.Hierarchy{Goal: top.label}
	seenCodes := make(map[string]string)
	for _, element := range top.elements {
		pillar, ok := parsePillar(element, levels, seenCodes, events)
		if ok {
			hierarchy.Pillars = append(hierarchy.Pillars, pillar)
		}
	}
	return hierarchy, nil
}

// collectLevels validates and classifies each raw level. The first element
// decides whether a level is a leaf (criteria) or a group (child ids).
// On duplicate level ids the first occurrence wins, matching the rule for
// duplicate criterion codes.
func collectLevels(raw []dataio.RawLevel, events *schema.EventLog) map[string]parsedLevel {
	levels := make(map[string]parsedLevel, len(raw))
	for i, level := range raw {
		if level.ID == "" || level.Label == "" || len(level.Elements) == 0 {
			events.Addf(schema.SkippedEntry, "hierarchy", "level %s is missing id, label or elements", describeLevel(level, i))
			continue
		}
		if _, ok := levels[level.ID]; ok {
			events.Addf(schema.SkippedEntry, "hierarchy", "duplicate level id %q", level.ID)
			continue
		}
		levels[level.ID] = parsedLevel{
			label:    level.Label,
			elements: level.Elements,
			leaf:     level.Elements[0].Criterion != nil,
		}
	}
	return levels
}

// parsePillar resolves one top group element into a pillar. The element
// must name a known leaf level with at least one valid criterion.
func parsePillar(element dataio.RawElement, levels map[string]parsedLevel, seenCodes map[string]string, events *schema.EventLog) (schema.Pillar, bool) {
	if element.ChildID == "" {
		events.Add(schema.SkippedEntry, schema.TopLevelID, "top level elements must be child level ids")
		return schema.Pillar{}, false
	}

	level, ok := levels[element.ChildID]
	if !ok {
		events.Addf(schema.SkippedEntry, schema.TopLevelID, "element %q names an unknown level", element.ChildID)
		return schema.Pillar{}, false
	}
	if !level.leaf {
		events.Addf(schema.SkippedEntry, schema.TopLevelID, "level %q is a group, nested groups are not supported", element.ChildID)
		return schema.Pillar{}, false
	}

	pillar := schema.Pillar{ID: element.ChildID, Label: level.label}
	for _, entry := range level.elements {
		criterion, ok := parseCriterion(entry, element.ChildID, seenCodes, events)
		if ok {
			pillar.Criteria = append(pillar.Criteria, criterion)
		}
	}
	if len(pillar.Criteria) == 0 {
		events.Addf(schema.SkippedEntry, schema.TopLevelID, "level %q has no valid criteria", element.ChildID)
		return schema.Pillar{}, false
	}
	return pillar, true
}

// parseCriterion validates one leaf level element. Criterion codes are a
// global namespace, so a code seen under any earlier pillar wins and the
// later definition is skipped.
func parseCriterion(entry dataio.RawElement, levelID string, seenCodes map[string]string, events *schema.EventLog) (schema.Criterion, bool) {
	if entry.Criterion == nil {
		events.Addf(schema.SkippedEntry, levelID, "criteria level elements must be criterion definitions")
		return schema.Criterion{}, false
	}

	raw := entry.Criterion
	if raw.Code == "" || raw.Label == "" {
		events.Addf(schema.SkippedEntry, levelID, "criterion is missing label or code")
		return schema.Criterion{}, false
	}
	if firstLevel, ok := seenCodes[raw.Code]; ok {
		events.Addf(schema.SkippedEntry, levelID, "duplicate criterion code %q already defined under %q", raw.Code, firstLevel)
		return schema.Criterion{}, false
	}
	seenCodes[raw.Code] = levelID

	return schema.Criterion{
		Code:        raw.Code,
		Label:       raw.Label,
		Description: raw.Description,
		Year:        string(raw.Year),
		SourceShort: raw.SourceShort,
		SourceLong:  raw.SourceLong,
	}, true
}

// describeLevel identifies a level for diagnostics, falling back to its
// position when the id is missing.
func describeLevel(level dataio.RawLevel, index int) string {
	if level.ID != "" {
		return fmt.Sprintf("%q", level.ID)
	}
	return fmt.Sprintf("at position %d", index)
}
