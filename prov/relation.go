package prov

import "fmt"

// RelationKind identifies the typed edge kinds of the provenance graph,
// named after the W3C PROV relations they correspond to.
type RelationKind string

const (
	// RelationDerivation links an entity to the entity it was derived
	// from (a file entity to its sample entity).
	RelationDerivation RelationKind = "wasDerivedFrom"

	// RelationGeneration links an entity to the activity that produced it.
	RelationGeneration RelationKind = "wasGeneratedBy"

	// RelationAssociation links an activity to the agent responsible for
	// executing it.
	RelationAssociation RelationKind = "wasAssociatedWith"

	// RelationAttribution links an entity to the agent it is attributed to.
	RelationAttribution RelationKind = "wasAttributedTo"
)

// IsValid returns true if the relation kind is one of the defined constants.
func (k RelationKind) IsValid() bool {
	switch k {
	case RelationDerivation, RelationGeneration, RelationAssociation, RelationAttribution:
		return true
	default:
		return false
	}
}

// String returns the string representation of the relation kind.
func (k RelationKind) String() string {
	return string(k)
}

// ParseRelationKind parses a string into a RelationKind value.
// Returns an error if the string is not a valid relation kind.
func ParseRelationKind(s string) (RelationKind, error) {
	k := RelationKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("prov: invalid relation kind %q", s)
	}
	return k, nil
}

// Relation is a typed edge between two node identifiers. Both endpoints
// are guaranteed to resolve to nodes in the owning document at the time
// the relation was added.
type Relation struct {
	Kind   RelationKind
	FromID string
	ToID   string
}
