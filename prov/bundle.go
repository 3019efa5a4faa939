package prov

import (
	"fmt"
	"time"
)

// Bundle is an isolated sub-graph holding the nodes and relations that
// belong to one sample. It has its own namespace table, independent of the
// document-global scope and of sibling bundles, and a default namespace
// under which bare node names are resolved.
//
// Node identifiers remain unique across the whole document: creating a
// bundle node whose identifier exists anywhere else fails with
// ErrDuplicateNode.
type Bundle struct {
	doc              *Document
	id               string
	defaultNamespace string
	namespaces       *namespaceSet
	nodes            *nodeSet
	relations        []Relation
}

// ID returns the bundle identifier (for example "samples:S1").
func (b *Bundle) ID() string {
	return b.id
}

// SetDefaultNamespace sets the namespace bare node names resolve under,
// conventionally the sample's own identifier.
func (b *Bundle) SetDefaultNamespace(label string) error {
	if b.doc.sealed {
		return fmt.Errorf("prov: bundle %q set default namespace: %w", b.id, ErrDocumentSealed)
	}
	b.defaultNamespace = label
	return nil
}

// DefaultNamespace returns the bundle's default namespace.
func (b *Bundle) DefaultNamespace() string {
	return b.defaultNamespace
}

// AddNamespace registers a namespace in the bundle-local scope.
// Fails with ErrDuplicateNamespace if the prefix is already registered in
// this bundle. Sibling bundles and the global scope are independent.
func (b *Bundle) AddNamespace(prefix, label string) (*Namespace, error) {
	if b.doc.sealed {
		return nil, fmt.Errorf("prov: bundle %q add namespace %q: %w", b.id, prefix, ErrDocumentSealed)
	}
	return b.namespaces.add(prefix, label)
}

// HasNamespace reports whether a prefix is registered in this bundle.
func (b *Bundle) HasNamespace(prefix string) bool {
	return b.namespaces.has(prefix)
}

// Namespace looks up a bundle-local namespace by prefix.
func (b *Bundle) Namespace(prefix string) (*Namespace, bool) {
	ns, ok := b.namespaces.byPrefix[prefix]
	return ns, ok
}

// Namespaces returns the bundle-local namespaces in registration order.
func (b *Bundle) Namespaces() []*Namespace {
	return b.namespaces.all()
}

// Entity creates an entity node inside the bundle. With a nil namespace
// the identifier is the bare name, resolved under the bundle's default
// namespace.
func (b *Bundle) Entity(ns *Namespace, name string, attrs []Attribute) (*Node, error) {
	return b.doc.newNode(b.nodes, "bundle "+b.id, KindEntity, QualifiedID(ns, name), attrs, time.Time{}, time.Time{})
}

// Activity creates an activity node inside the bundle with the given time
// window. Fails with ErrInvalidActivityWindow if start is after end.
func (b *Bundle) Activity(ns *Namespace, name string, start, end time.Time, attrs []Attribute) (*Node, error) {
	id := QualifiedID(ns, name)
	if start.After(end) {
		return nil, fmt.Errorf("prov: activity %q: start %s after end %s: %w",
			id, start.Format(time.RFC3339), end.Format(time.RFC3339), ErrInvalidActivityWindow)
	}
	return b.doc.newNode(b.nodes, "bundle "+b.id, KindActivity, id, attrs, start, end)
}

// Agent creates an agent node inside the bundle.
func (b *Bundle) Agent(ns *Namespace, name string) (*Node, error) {
	return b.doc.newNode(b.nodes, "bundle "+b.id, KindAgent, QualifiedID(ns, name), nil, time.Time{}, time.Time{})
}

// Nodes returns the bundle's nodes in creation order.
func (b *Bundle) Nodes() []*Node {
	return b.nodes.all()
}

// Relations returns the bundle's relations in the order they were wired.
func (b *Bundle) Relations() []Relation {
	out := make([]Relation, len(b.relations))
	copy(out, b.relations)
	return out
}

// WasDerivedFrom wires a derivation edge (entity derived from source
// entity) into the bundle scope.
func (b *Bundle) WasDerivedFrom(fromID, toID string) error {
	return b.doc.addRelation(&b.relations, RelationDerivation, fromID, toID)
}

// WasGeneratedBy wires a generation edge (entity produced by activity)
// into the bundle scope.
func (b *Bundle) WasGeneratedBy(entityID, activityID string) error {
	return b.doc.addRelation(&b.relations, RelationGeneration, entityID, activityID)
}

// WasAssociatedWith wires an association edge (activity executed by agent)
// into the bundle scope.
func (b *Bundle) WasAssociatedWith(activityID, agentID string) error {
	return b.doc.addRelation(&b.relations, RelationAssociation, activityID, agentID)
}

// WasAttributedTo wires an attribution edge (entity attributed to agent)
// into the bundle scope.
func (b *Bundle) WasAttributedTo(entityID, agentID string) error {
	return b.doc.addRelation(&b.relations, RelationAttribution, entityID, agentID)
}
