package schema

import "fmt"

// StructureError reports a hierarchy definition without a usable top group.
// Nothing is scoreable without one; parsing returns it alongside an empty
// hierarchy and the caller decides how to surface it.
type StructureError struct {
	Reason string // What made the structure unusable
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid hierarchy structure: %s", e.Reason)
}

// MissingIdentifierError reports an entity table without its identifier
// column. Callers treat the table as empty and produce an empty ranking.
type MissingIdentifierError struct {
	Column string // The identifier column that was expected
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("entity table has no identifier column %q", e.Column)
}
