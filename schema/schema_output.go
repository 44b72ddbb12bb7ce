package schema

// EnrichedRankedEntity adds presentation data to a RankedEntity.
type EnrichedRankedEntity struct {
	Label string `json:"label"`
	RankedEntity
}

// RankReport bundles one full ranking pass for rendering. It is the unit
// handed to writers and MCP tools; nothing in it is ever persisted.
type RankReport struct {
	Goal     string             `json:"goal"`
	Strict   bool               `json:"strict"`
	Selected []string           `json:"selected_criteria"`
	Global   map[string]float64 `json:"global_weights"`
	Entities []RankedEntity     `json:"entities"`
	Events   []Event            `json:"events,omitempty"`
}

// WeightReport bundles normalized weights for inspection output.
type WeightReport struct {
	Goal     string                        `json:"goal"`
	Pillars  map[string]float64            `json:"pillar_weights"`
	Criteria map[string]map[string]float64 `json:"criterion_weights"`
	Global   map[string]float64            `json:"global_weights"`
	Sum      float64                       `json:"global_sum"`
	Events   []Event                       `json:"events,omitempty"`
}

// CriterionDoc is one row of the criteria documentation output.
type CriterionDoc struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Pillar      string `json:"pillar"`
	Description string `json:"description,omitempty"`
	Year        string `json:"year,omitempty"`
	SourceShort string `json:"source_short,omitempty"`
	SourceLong  string `json:"source_long,omitempty"`
	Selected    bool   `json:"selected"`
	WithData    int    `json:"entities_with_data"`
	Total       int    `json:"entities_total"`
}

// CriteriaReport bundles criteria documentation for rendering.
type CriteriaReport struct {
	Goal     string         `json:"goal"`
	Criteria []CriterionDoc `json:"criteria"`
	Events   []Event        `json:"events,omitempty"`
}

// Ranking label constants.
const (
	LeaderLabel   = "Leader"   // Top tier, at least 80% of the best score
	StrongLabel   = "Strong"   // At least 60% of the best score
	ModerateLabel = "Moderate" // At least 40% of the best score
	LowLabel      = "Low"      // Everything below
)

// RelativeLabel returns a plain text label indicating how an entity score
// compares to the leader of the same ranking. Scores have no absolute
// scale, so tiers are percentages of the best score.
func RelativeLabel(score, best float64) string {
	if best <= 0 {
		return LowLabel
	}
	pct := score / best * 100
	switch {
	case pct >= 80:
		return LeaderLabel
	case pct >= 60:
		return StrongLabel
	case pct >= 40:
		return ModerateLabel
	default:
		return LowLabel
	}
}

// EnrichRanking adds relative labels to a ranking for display output.
// Entities arrive sorted, so the leader score is the first row's.
func EnrichRanking(entities []RankedEntity) []EnrichedRankedEntity {
	var best float64
	if len(entities) > 0 {
		best = entities[0].Score
	}
	output := make([]EnrichedRankedEntity, len(entities))
	for i, e := range entities {
		output[i] = EnrichedRankedEntity{
			Label:        RelativeLabel(e.Score, best),
			RankedEntity: e,
		}
	}
	return output
}
