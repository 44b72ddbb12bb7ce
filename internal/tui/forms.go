// Package tui has interactive terminal forms for editing saved sessions.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/locusproject/locus/schema"

	"github.com/charmbracelet/huh"
)

// entityPickerHeight caps region pickers so large regions scroll instead of
// filling the screen.
const entityPickerHeight = 12

// Choices offered by the strict completeness select.
const (
	strictDefault = "default"
	strictOn      = "on"
	strictOff     = "off"
)

// SessionForm walks the inputs of one saved session page by page: a criteria
// picker and weight inputs per pillar, an entity picker per region, run
// options and a final confirmation. Values live behind pointers until the
// form finishes and Run reads them back into a payload.
type SessionForm struct {
	name      string
	hierarchy schema.Hierarchy
	entityIDs []string
	names     map[string]schema.EntityName

	criteriaByPillar map[string]*[]string
	entitiesByRegion map[string]*[]string
	pillarWeights    map[string]*string
	criterionWeights map[string]map[string]*string
	strict           *string
	confirmed        *bool
}

// NewSessionForm seeds a form from the session's current payload. Absent
// selection maps mean everything is included, so a fresh session starts with
// every criterion and entity picked.
func NewSessionForm(name string, h schema.Hierarchy, entityIDs []string, names map[string]schema.EntityName, initial schema.SessionPayload) *SessionForm {
	f := &SessionForm{
		name:             name,
		hierarchy:        h,
		entityIDs:        entityIDs,
		names:            names,
		criteriaByPillar: make(map[string]*[]string),
		entitiesByRegion: make(map[string]*[]string),
		pillarWeights:    make(map[string]*string),
		criterionWeights: make(map[string]map[string]*string),
		strict:           new(string),
		confirmed:        new(bool),
	}

	sel := initial.Selection()
	for _, pillar := range h.Pillars {
		chosen := []string{}
		weights := make(map[string]*string, len(pillar.Criteria))
		for _, criterion := range pillar.Criteria {
			if sel.CriterionIncluded(criterion.Code) {
				chosen = append(chosen, criterion.Code)
			}
			weights[criterion.Code] = seedWeight(initial.CriterionWeights[pillar.ID], criterion.Code)
		}
		f.criteriaByPillar[pillar.ID] = &chosen
		f.pillarWeights[pillar.ID] = seedWeight(initial.PillarWeights, pillar.ID)
		f.criterionWeights[pillar.ID] = weights
	}

	regions, grouped := schema.GroupByRegion(entityIDs, names)
	for _, region := range regions {
		chosen := []string{}
		for _, id := range grouped[region] {
			if sel.EntityIncluded(id) {
				chosen = append(chosen, id)
			}
		}
		f.entitiesByRegion[region] = &chosen
	}

	*f.strict = strictChoice(initial.Strict)
	return f
}

// Run walks the form and collects the edited inputs. The second return
// reports whether the user confirmed the save on the last page.
func (f *SessionForm) Run() (schema.SessionPayload, bool, error) {
	if err := huh.NewForm(f.groups()...).Run(); err != nil {
		return schema.SessionPayload{}, false, err
	}
	return f.payload(), *f.confirmed, nil
}

// groups assembles the form pages: intro, one page per pillar, one page per
// region, run options, confirmation.
func (f *SessionForm) groups() []*huh.Group {
	groups := []*huh.Group{huh.NewGroup(
		huh.NewNote().
			Title(fmt.Sprintf("Edit Session: %s", f.name)).
			Description("Pick criteria and entities, then set raw weights.\nBlank weights fall back to an equal split.").
			Next(true).
			NextLabel("Continue"),
	)}

	for _, pillar := range f.hierarchy.Pillars {
		groups = append(groups, huh.NewGroup(f.pillarFields(pillar)...))
	}

	regions, grouped := schema.GroupByRegion(f.entityIDs, f.names)
	for _, region := range regions {
		groups = append(groups, huh.NewGroup(f.entityPicker(region, grouped[region])))
	}

	groups = append(groups, huh.NewGroup(f.strictSelect()))
	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Save session?").
			Description(fmt.Sprintf("Write these inputs back to %q.", f.name)).
			Affirmative("Save").
			Negative("Discard").
			Value(f.confirmed),
	))
	return groups
}

// pillarFields builds one pillar's page: the criteria picker, the pillar
// weight and one weight input per criterion.
func (f *SessionForm) pillarFields(pillar schema.Pillar) []huh.Field {
	chosen := f.criteriaByPillar[pillar.ID]
	chosenSet := make(map[string]bool, len(*chosen))
	for _, code := range *chosen {
		chosenSet[code] = true
	}

	options := make([]huh.Option[string], 0, len(pillar.Criteria))
	for _, criterion := range pillar.Criteria {
		options = append(options, huh.NewOption(optionLabel(criterion.Label, criterion.Code), criterion.Code).
			Selected(chosenSet[criterion.Code]))
	}

	fields := []huh.Field{
		huh.NewMultiSelect[string]().
			Title(fmt.Sprintf("%s criteria", pillar.Label)).
			Description("Deselected criteria are excluded from scoring.").
			Options(options...).
			Value(chosen),
		weightInput(fmt.Sprintf("%s pillar weight", pillar.Label), f.pillarWeights[pillar.ID]),
	}
	for _, criterion := range pillar.Criteria {
		fields = append(fields, weightInput(fmt.Sprintf("Weight: %s", criterion.Label), f.criterionWeights[pillar.ID][criterion.Code]))
	}
	return fields
}

// entityPicker builds one region's page.
func (f *SessionForm) entityPicker(region string, ids []string) huh.Field {
	chosen := f.entitiesByRegion[region]
	chosenSet := make(map[string]bool, len(*chosen))
	for _, id := range *chosen {
		chosenSet[id] = true
	}

	options := make([]huh.Option[string], 0, len(ids))
	for _, id := range ids {
		options = append(options, huh.NewOption(optionLabel(schema.DisplayName(id, f.names), id), id).
			Selected(chosenSet[id]))
	}

	picker := huh.NewMultiSelect[string]().
		Title(fmt.Sprintf("%s entities", region)).
		Description("Deselected entities are excluded from the ranking.").
		Options(options...).
		Value(chosen)
	if len(options) > entityPickerHeight {
		picker = picker.Height(entityPickerHeight)
	}
	return picker
}

// strictSelect offers the three strict completeness choices. "default"
// leaves the flag to the command line.
func (f *SessionForm) strictSelect() huh.Field {
	return huh.NewSelect[string]().
		Title("Strict completeness").
		Description("Strict drops entities missing any selected criterion before scoring.").
		Options(
			huh.NewOption("Use the command default", strictDefault),
			huh.NewOption("Always strict", strictOn),
			huh.NewOption("Never strict", strictOff),
		).
		Value(f.strict)
}

// weightInput is one raw weight field. Blank keeps the equal-split default.
func weightInput(title string, value *string) huh.Field {
	return huh.NewInput().
		Title(title).
		Description("Raw weight, blank for the default").
		Placeholder("1").
		Value(value).
		Validate(validateWeight)
}

// payload reads the value stores back into a persistable document.
func (f *SessionForm) payload() schema.SessionPayload {
	var chosenCriteria []string
	for _, pillar := range f.hierarchy.Pillars {
		chosenCriteria = append(chosenCriteria, *f.criteriaByPillar[pillar.ID]...)
	}
	var chosenEntities []string
	regions, _ := schema.GroupByRegion(f.entityIDs, f.names)
	for _, region := range regions {
		chosenEntities = append(chosenEntities, *f.entitiesByRegion[region]...)
	}

	payload := schema.SessionPayload{
		Criteria: buildInclusion(f.hierarchy.CriterionCodes(), chosenCriteria),
		Entities: buildInclusion(f.entityIDs, chosenEntities),
		Strict:   strictValue(*f.strict),
	}

	for _, pillar := range f.hierarchy.Pillars {
		if w, ok := parseWeight(*f.pillarWeights[pillar.ID]); ok {
			if payload.PillarWeights == nil {
				payload.PillarWeights = make(map[string]float64)
			}
			payload.PillarWeights[pillar.ID] = w
		}
		for _, criterion := range pillar.Criteria {
			w, ok := parseWeight(*f.criterionWeights[pillar.ID][criterion.Code])
			if !ok {
				continue
			}
			if payload.CriterionWeights == nil {
				payload.CriterionWeights = make(map[string]map[string]float64)
			}
			if payload.CriterionWeights[pillar.ID] == nil {
				payload.CriterionWeights[pillar.ID] = make(map[string]float64)
			}
			payload.CriterionWeights[pillar.ID][criterion.Code] = w
		}
	}
	return payload
}

// buildInclusion converts a picker result into an inclusion map with one
// entry per known id. Picking everything collapses to nil because an absent
// map already includes everything.
func buildInclusion(all, chosen []string) map[string]bool {
	if len(all) == 0 {
		return nil
	}
	chosenSet := make(map[string]bool, len(chosen))
	for _, id := range chosen {
		chosenSet[id] = true
	}
	if len(chosenSet) == len(all) {
		return nil
	}
	included := make(map[string]bool, len(all))
	for _, id := range all {
		included[id] = chosenSet[id]
	}
	return included
}

// seedWeight formats a stored raw weight for its input field. Absent weights
// seed a blank field.
func seedWeight(raw map[string]float64, key string) *string {
	val := ""
	if w, ok := raw[key]; ok {
		val = strconv.FormatFloat(w, 'f', -1, 64)
	}
	return &val
}

// parseWeight reads a weight field back. Blank or invalid input reports no
// weight; validation keeps invalid input out of finished forms.
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w < 0 {
		return 0, false
	}
	return w, true
}

// validateWeight accepts blank input or a non-negative number.
func validateWeight(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if w < 0 {
		return errors.New("weight cannot be negative")
	}
	return nil
}

// strictChoice maps the stored strict flag onto a select choice.
func strictChoice(strict *bool) string {
	switch {
	case strict == nil:
		return strictDefault
	case *strict:
		return strictOn
	default:
		return strictOff
	}
}

// strictValue maps a select choice back onto the stored flag.
func strictValue(choice string) *bool {
	switch choice {
	case strictOn:
		v := true
		return &v
	case strictOff:
		v := false
		return &v
	}
	return nil
}

// optionLabel renders "Name (id)" picker rows, collapsing to the id alone
// when the display name is just the id fallback.
func optionLabel(display, id string) string {
	if display == id {
		return id
	}
	return fmt.Sprintf("%s (%s)", display, id)
}
