package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for session storage.
	DatabaseBackend string

	// EventKind represents the kind of a recomputation event.
	EventKind string

	// SelectionAxis represents which axis of a selection an event refers to.
	SelectionAxis string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All session store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All event kinds recorded during recomputation.
const (
	ZeroWeightFallback     EventKind = "zero_weight_fallback"     // scope summed to zero, equal weights applied
	EmptySelectionFallback EventKind = "empty_selection_fallback" // empty axis reverted to all available
	SkippedEntry           EventKind = "skipped_entry"            // malformed structure entry dropped during parse
)

// Selection axes referenced by fallback events.
const (
	CriteriaAxis SelectionAxis = "criteria"
	EntitiesAxis SelectionAxis = "entities"
)

// TopLevelID is the mandatory id of the group level that defines the goal.
const TopLevelID = "top"

// PillarScope is the name of the pillar-level normalization scope.
const PillarScope = "pillars"

// FallbackRegion groups entities whose region is unknown.
const FallbackRegion = "Other"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid session store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CriterionScope returns the normalization scope name for one pillar's
// criterion weights.
func CriterionScope(pillarID string) string {
	return "criteria:" + pillarID
}
