package schema

import "time"

// SessionPayload is the JSON document persisted for one saved session.
// It carries inputs only: selections and raw weights as entered. Scores and
// rankings are never stored; every invocation recomputes them.
type SessionPayload struct {
	Criteria         map[string]bool               `json:"criteria,omitempty"`
	Entities         map[string]bool               `json:"entities,omitempty"`
	PillarWeights    map[string]float64            `json:"pillar_weights,omitempty"`
	CriterionWeights map[string]map[string]float64 `json:"criterion_weights,omitempty"`
	Strict           *bool                         `json:"strict,omitempty"`
}

// Selection converts the persisted inclusion maps back into a Selection.
func (p SessionPayload) Selection() Selection {
	return Selection{Criteria: p.Criteria, Entities: p.Entities}
}

// HasWeights reports whether the payload carries any raw weights.
func (p SessionPayload) HasWeights() bool {
	return len(p.PillarWeights) > 0 || len(p.CriterionWeights) > 0
}

// SessionRecord represents a row from the locus_sessions table.
type SessionRecord struct {
	ID        string         `json:"id"`      // UUID primary key
	Name      string         `json:"name"`    // Unique human-readable session name
	Payload   SessionPayload `json:"payload"` // Decoded session inputs
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
