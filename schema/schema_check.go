package schema

// CheckResult holds the results of a data health check.
type CheckResult struct {
	Passed        bool             `json:"passed"`
	Violations    []CheckViolation `json:"violations,omitempty"`
	Goal          string           `json:"goal"`
	TotalEntities int              `json:"total_entities"` // Rows in the loaded table
	TotalCriteria int              `json:"total_criteria"` // Criteria defined by the hierarchy
	SelectedCodes []string         `json:"selected_codes"` // Criteria surviving selection
	SurvivingRows int              `json:"surviving_rows"` // Rows surviving the strict completeness drop
	Coverage      map[string]int   `json:"coverage"`       // Entities with data per selected code
	MinCoverage   float64          `json:"min_coverage"`   // Required fraction of entities with data per code
	MinRows       int              `json:"min_rows"`       // Required surviving row count
	Events        []Event          `json:"events,omitempty"` // Diagnostics recorded while loading and selecting
}

// CheckViolation represents one failed data health rule.
type CheckViolation struct {
	Rule     string  `json:"rule"`           // Which gate rule failed
	Code     string  `json:"code,omitempty"` // Criterion code for coverage rules, empty otherwise
	Measured float64 `json:"measured"`       // Observed value
	Limit    float64 `json:"limit"`          // Configured threshold
	Detail   string  `json:"detail"`         // Human-readable explanation
}

// Check rule names reported in violations.
const (
	CheckRuleStructure  = "structure"
	CheckRuleIdentifier = "identifier"
	CheckRuleCoverage   = "coverage"
	CheckRuleRows       = "rows"
)
