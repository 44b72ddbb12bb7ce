// Package core has core logic for hierarchy parsing, selection, scoring and ranking.
package core

import (
	"errors"
	"sort"

	"github.com/locusproject/locus/core/algo"
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/dataio"
	"github.com/locusproject/locus/schema"
)

// runInputs bundles the loaded artifacts shared by all flows.
type runInputs struct {
	hierarchy schema.Hierarchy
	table     schema.EntityTable
	names     map[string]schema.EntityName
}

// resolvedWeights carries every stage of one weight resolution pass.
type resolvedWeights struct {
	Pillars  map[string]float64
	Criteria map[string]map[string]float64
	Global   map[string]float64
}

// ExecuteRank recomputes the full ranking for the given configuration.
// It is pure compute: callers decide how to render the report and how
// to surface the recorded events.
func ExecuteRank(cfg *contract.Config) (*schema.RankReport, error) {
	events := &schema.EventLog{}
	in, err := loadRunInputs(cfg, true, events)
	if err != nil {
		return nil, err
	}

	sel := BuildSelection(cfg, in.hierarchy, in.table, events)
	selected, filtered := ApplySelection(in.table, in.hierarchy, sel, cfg.Strict, events)
	weights := resolveWeights(in.hierarchy, selected, cfg.PillarWeightsRaw, cfg.CriterionWeightsRaw, events)
	scores := algo.ScoreEntities(filtered, weights.Global)
	ranked := algo.TopN(algo.AssembleRanking(scores, in.names), cfg.ResultLimit)

	return &schema.RankReport{
		Goal:     in.hierarchy.Goal,
		Strict:   cfg.Strict,
		Selected: selected,
		Global:   weights.Global,
		Entities: ranked,
		Events:   events.Events(),
	}, nil
}

// ExecuteWeights resolves and normalizes weights without ranking anything.
// The entity table is optional here: without one the selection applies to
// all defined criteria instead of the available intersection.
func ExecuteWeights(cfg *contract.Config) (*schema.WeightReport, error) {
	events := &schema.EventLog{}
	in, err := loadRunInputs(cfg, false, events)
	if err != nil {
		return nil, err
	}

	sel := BuildSelection(cfg, in.hierarchy, in.table, events)
	var selected []string
	if cfg.DataPath != "" {
		selected, _ = ApplySelection(in.table, in.hierarchy, sel, false, events)
	} else {
		selected = selectDefinedCriteria(in.hierarchy, sel, events)
	}

	weights := resolveWeights(in.hierarchy, selected, cfg.PillarWeightsRaw, cfg.CriterionWeightsRaw, events)
	var sum float64
	for _, w := range weights.Global {
		sum += w
	}

	return &schema.WeightReport{
		Goal:     in.hierarchy.Goal,
		Pillars:  weights.Pillars,
		Criteria: weights.Criteria,
		Global:   weights.Global,
		Sum:      sum,
		Events:   events.Events(),
	}, nil
}

// ExecuteCriteria documents every defined criterion together with its
// selection state and data coverage. The entity table is optional; without
// one the coverage counts are zero.
func ExecuteCriteria(cfg *contract.Config) (*schema.CriteriaReport, error) {
	events := &schema.EventLog{}
	in, err := loadRunInputs(cfg, false, events)
	if err != nil {
		return nil, err
	}

	sel := BuildSelection(cfg, in.hierarchy, in.table, events)
	var selected []string
	var participating schema.EntityTable
	if cfg.DataPath != "" {
		selected, participating = ApplySelection(in.table, in.hierarchy, sel, false, events)
	} else {
		selected = selectDefinedCriteria(in.hierarchy, sel, events)
	}
	selectedSet := make(map[string]struct{}, len(selected))
	for _, code := range selected {
		selectedSet[code] = struct{}{}
	}

	// Coverage counts come from the original rows because the filtered
	// table only carries selected columns.
	byID := make(map[string]schema.EntityRow, len(in.table.Rows))
	for _, row := range in.table.Rows {
		byID[row.ID] = row
	}
	counts := make(map[string]int)
	for _, row := range participating.Rows {
		for code := range byID[row.ID].Values {
			counts[code]++
		}
	}

	report := &schema.CriteriaReport{Goal: in.hierarchy.Goal}
	for _, pillar := range in.hierarchy.Pillars {
		for _, criterion := range pillar.Criteria {
			_, isSelected := selectedSet[criterion.Code]
			report.Criteria = append(report.Criteria, schema.CriterionDoc{
				Code:        criterion.Code,
				Label:       criterion.Label,
				Pillar:      pillar.Label,
				Description: criterion.Description,
				Year:        criterion.Year,
				SourceShort: criterion.SourceShort,
				SourceLong:  criterion.SourceLong,
				Selected:    isSelected,
				WithData:    counts[criterion.Code],
				Total:       len(participating.Rows),
			})
		}
	}
	report.Events = events.Events()
	return report, nil
}

// FormInputs bundles what an interactive session editor needs to render
// its pickers.
type FormInputs struct {
	Hierarchy schema.Hierarchy
	EntityIDs []string
	Names     map[string]schema.EntityName
}

// LoadFormInputs loads the hierarchy, entity ids and display names for an
// interactive editing pass. The entity table is optional; without one the
// editor has no entity pickers to render.
func LoadFormInputs(cfg *contract.Config) (*FormInputs, error) {
	events := &schema.EventLog{}
	in, err := loadRunInputs(cfg, false, events)
	if err != nil {
		return nil, err
	}
	contract.LogEvents(events.Events())

	ids := make([]string, 0, len(in.table.Rows))
	for _, row := range in.table.Rows {
		ids = append(ids, row.ID)
	}
	sort.Strings(ids)

	return &FormInputs{Hierarchy: in.hierarchy, EntityIDs: ids, Names: in.names}, nil
}

// ResolveSavePayload captures the invocation's inputs as a session payload.
// Include and exclude flag lists resolve into inclusion maps against the
// known universes before capture, so a saved session replays the same
// selection when applied later. Axes without lists keep whatever a merged
// session already put on the config.
func ResolveSavePayload(cfg *contract.Config) (schema.SessionPayload, error) {
	payload := cfg.SessionPayload()
	hasCriteriaLists := len(cfg.IncludeCriteria) > 0 || len(cfg.ExcludeCriteria) > 0
	hasEntityLists := len(cfg.IncludeEntities) > 0 || len(cfg.ExcludeEntities) > 0
	if !hasCriteriaLists && !hasEntityLists {
		return payload, nil
	}
	if hasEntityLists && cfg.DataPath == "" {
		return schema.SessionPayload{}, errors.New("entity selections need a data table to resolve ids, pass --data or the data config key")
	}

	events := &schema.EventLog{}
	in, err := loadRunInputs(cfg, hasEntityLists, events)
	if err != nil {
		return schema.SessionPayload{}, err
	}

	if hasCriteriaLists {
		payload.Criteria = buildAxis(cfg.IncludeCriteria, cfg.ExcludeCriteria, in.hierarchy.CriterionCodes(), cfg.Selection.Criteria, schema.CriteriaAxis, events)
	}
	if hasEntityLists {
		ids := make([]string, 0, len(in.table.Rows))
		for _, row := range in.table.Rows {
			ids = append(ids, row.ID)
		}
		payload.Entities = buildAxis(cfg.IncludeEntities, cfg.ExcludeEntities, ids, cfg.Selection.Entities, schema.EntitiesAxis, events)
	}
	contract.LogEvents(events.Events())
	return payload, nil
}

// loadRunInputs loads and parses the hierarchy, entity table and name
// lookup named by the configuration. A table whose identifier column is
// missing degrades to an empty table with a warning, so downstream flows
// produce empty results instead of failing.
func loadRunInputs(cfg *contract.Config, needData bool, events *schema.EventLog) (*runInputs, error) {
	if needData && cfg.DataPath == "" {
		return nil, errors.New("entity table path is required")
	}

	levels, err := dataio.LoadDefinitions(cfg.HierarchyPath)
	if err != nil {
		return nil, err
	}
	hierarchy, err := ParseHierarchy(levels, events)
	if err != nil {
		return nil, err
	}

	in := &runInputs{hierarchy: hierarchy}
	if cfg.DataPath != "" {
		table, err := dataio.LoadEntityTable(cfg.DataPath, cfg.IDColumn)
		var missing *schema.MissingIdentifierError
		switch {
		case errors.As(err, &missing):
			contract.LogWarn("entity table has no usable identifier column", err)
		case err != nil:
			return nil, err
		default:
			in.table = table
		}
	}
	if cfg.NamesPath != "" {
		names, err := dataio.LoadNames(cfg.NamesPath)
		if err != nil {
			return nil, err
		}
		in.names = names
	}
	return in, nil
}

// resolveWeights normalizes raw weights over the pillars that still have
// selected criteria and composes them into global weights. A pillar with
// no selected criteria stays out of the pillar scope, so its mass
// redistributes to the remaining pillars.
func resolveWeights(h schema.Hierarchy, selected []string, pillarRaw map[string]float64, criterionRaw map[string]map[string]float64, events *schema.EventLog) resolvedWeights {
	selectedSet := make(map[string]struct{}, len(selected))
	for _, code := range selected {
		selectedSet[code] = struct{}{}
	}

	pillarScope := schema.WeightScope{Name: schema.PillarScope}
	criteria := make(map[string]map[string]float64)
	for _, pillar := range h.Pillars {
		scope := schema.WeightScope{Name: schema.CriterionScope(pillar.ID)}
		for _, criterion := range pillar.Criteria {
			if _, ok := selectedSet[criterion.Code]; !ok {
				continue
			}
			scope.Items = append(scope.Items, schema.WeightItem{Key: criterion.Code, Raw: criterionRaw[pillar.ID][criterion.Code]})
		}
		if len(scope.Items) == 0 {
			continue
		}
		pillarScope.Items = append(pillarScope.Items, schema.WeightItem{Key: pillar.ID, Raw: pillarRaw[pillar.ID]})
		criteria[pillar.ID] = algo.Normalize(scope, events)
	}

	pillars := algo.Normalize(pillarScope, events)
	return resolvedWeights{
		Pillars:  pillars,
		Criteria: criteria,
		Global:   algo.GlobalWeights(h, pillars, criteria),
	}
}
