package prov

import (
	"fmt"
	"time"
)

// Document is a complete provenance graph: the global namespace table, the
// document-scoped nodes, one bundle per sample, and the typed relations
// between nodes.
//
// A Document is built by exactly one writer and is not safe for concurrent
// mutation. Independent documents can be built concurrently because they
// share no state. Call Seal once assembly finishes; afterwards the
// document only serves reads.
type Document struct {
	namespaces  *namespaceSet
	nodes       *nodeSet
	bundles     []*Bundle
	bundlesByID map[string]*Bundle
	relations   []Relation
	nodeScopes  map[string]string
	sealed      bool
}

// NewDocument creates an empty, unsealed document.
func NewDocument() *Document {
	return &Document{
		namespaces:  newNamespaceSet(),
		nodes:       newNodeSet(),
		bundlesByID: make(map[string]*Bundle),
		nodeScopes:  make(map[string]string),
	}
}

// AddNamespace registers a namespace in the document-global scope.
// Fails with ErrDuplicateNamespace if the prefix is already registered
// globally.
func (d *Document) AddNamespace(prefix, label string) (*Namespace, error) {
	if d.sealed {
		return nil, fmt.Errorf("prov: add namespace %q: %w", prefix, ErrDocumentSealed)
	}
	return d.namespaces.add(prefix, label)
}

// HasNamespace reports whether a prefix is registered in the global scope.
func (d *Document) HasNamespace(prefix string) bool {
	return d.namespaces.has(prefix)
}

// Namespace looks up a global namespace by prefix.
func (d *Document) Namespace(prefix string) (*Namespace, bool) {
	ns, ok := d.namespaces.byPrefix[prefix]
	return ns, ok
}

// Namespaces returns the global namespaces in registration order.
func (d *Document) Namespaces() []*Namespace {
	return d.namespaces.all()
}

// Entity creates an entity node in the document-global scope.
// The identifier is ns.Prefix + ":" + name.
func (d *Document) Entity(ns *Namespace, name string, attrs []Attribute) (*Node, error) {
	if ns == nil {
		return nil, fmt.Errorf("prov: nil namespace for document-scoped entity %q", name)
	}
	return d.newNode(d.nodes, "document", KindEntity, QualifiedID(ns, name), attrs, time.Time{}, time.Time{})
}

// Activity creates an activity node in the document-global scope with the
// given time window. Fails with ErrInvalidActivityWindow if start is after
// end.
func (d *Document) Activity(ns *Namespace, name string, start, end time.Time, attrs []Attribute) (*Node, error) {
	if ns == nil {
		return nil, fmt.Errorf("prov: nil namespace for document-scoped activity %q", name)
	}
	if start.After(end) {
		return nil, fmt.Errorf("prov: activity %q: start %s after end %s: %w",
			QualifiedID(ns, name), start.Format(time.RFC3339), end.Format(time.RFC3339), ErrInvalidActivityWindow)
	}
	return d.newNode(d.nodes, "document", KindActivity, QualifiedID(ns, name), attrs, start, end)
}

// Agent creates an agent node in the document-global scope.
func (d *Document) Agent(ns *Namespace, name string) (*Node, error) {
	if ns == nil {
		return nil, fmt.Errorf("prov: nil namespace for document-scoped agent %q", name)
	}
	return d.newNode(d.nodes, "document", KindAgent, QualifiedID(ns, name), nil, time.Time{}, time.Time{})
}

// Bundle opens a named sub-graph scoped to one sample. The bundle
// identifier is ns.Prefix + ":" + name. Fails with ErrDuplicateNode if a
// bundle with that identifier already exists.
func (d *Document) Bundle(ns *Namespace, name string) (*Bundle, error) {
	if d.sealed {
		return nil, fmt.Errorf("prov: open bundle %q: %w", name, ErrDocumentSealed)
	}
	if ns == nil {
		return nil, fmt.Errorf("prov: nil namespace for bundle %q", name)
	}
	id := QualifiedID(ns, name)
	if _, ok := d.bundlesByID[id]; ok {
		return nil, fmt.Errorf("prov: bundle %q: %w", id, ErrDuplicateNode)
	}
	b := &Bundle{
		doc:        d,
		id:         id,
		namespaces: newNamespaceSet(),
		nodes:      newNodeSet(),
	}
	d.bundlesByID[id] = b
	d.bundles = append(d.bundles, b)
	return b, nil
}

// HasNode reports whether an identifier resolves to a node anywhere in the
// document, global scope or any bundle.
func (d *Document) HasNode(id string) bool {
	_, ok := d.nodeScopes[id]
	return ok
}

// FindNode looks up a node by identifier across the global scope and all
// bundles.
func (d *Document) FindNode(id string) (*Node, bool) {
	if n, ok := d.nodes.get(id); ok {
		return n, true
	}
	for _, b := range d.bundles {
		if n, ok := b.nodes.get(id); ok {
			return n, true
		}
	}
	return nil, false
}

// Nodes returns the document-scoped nodes in creation order. Bundle-local
// nodes are enumerated through Bundles.
func (d *Document) Nodes() []*Node {
	return d.nodes.all()
}

// Bundles returns the bundles in creation order.
func (d *Document) Bundles() []*Bundle {
	out := make([]*Bundle, len(d.bundles))
	copy(out, d.bundles)
	return out
}

// Relations returns the document-scoped relations in the order they were
// wired. Bundle-local relations are enumerated through Bundles.
func (d *Document) Relations() []Relation {
	out := make([]Relation, len(d.relations))
	copy(out, d.relations)
	return out
}

// WasDerivedFrom wires a derivation edge (entity derived from source
// entity) into the document scope.
func (d *Document) WasDerivedFrom(fromID, toID string) error {
	return d.addRelation(&d.relations, RelationDerivation, fromID, toID)
}

// WasGeneratedBy wires a generation edge (entity produced by activity)
// into the document scope.
func (d *Document) WasGeneratedBy(entityID, activityID string) error {
	return d.addRelation(&d.relations, RelationGeneration, entityID, activityID)
}

// WasAssociatedWith wires an association edge (activity executed by agent)
// into the document scope.
func (d *Document) WasAssociatedWith(activityID, agentID string) error {
	return d.addRelation(&d.relations, RelationAssociation, activityID, agentID)
}

// WasAttributedTo wires an attribution edge (entity attributed to agent)
// into the document scope.
func (d *Document) WasAttributedTo(entityID, agentID string) error {
	return d.addRelation(&d.relations, RelationAttribution, entityID, agentID)
}

// Seal marks the document immutable. Sealing is idempotent; every mutation
// after the first Seal fails with ErrDocumentSealed.
func (d *Document) Seal() {
	d.sealed = true
}

// Sealed reports whether the document has been sealed.
func (d *Document) Sealed() bool {
	return d.sealed
}

// newNode performs the duplicate check against every scope in the document
// and stores the node in the given scope.
func (d *Document) newNode(scope *nodeSet, scopeName string, kind NodeKind, id string, attrs []Attribute, start, end time.Time) (*Node, error) {
	if d.sealed {
		return nil, fmt.Errorf("prov: create %s %q: %w", kind, id, ErrDocumentSealed)
	}
	if existing, ok := d.nodeScopes[id]; ok {
		return nil, fmt.Errorf("prov: %s %q already exists in %s: %w", kind, id, existing, ErrDuplicateNode)
	}
	n := &Node{
		Kind:       kind,
		ID:         id,
		Attributes: attrs,
		StartTime:  start,
		EndTime:    end,
	}
	scope.add(n)
	d.nodeScopes[id] = scopeName
	return n, nil
}

// addRelation validates both endpoints and appends the edge to the given
// relation list (the document's or a bundle's).
func (d *Document) addRelation(target *[]Relation, kind RelationKind, fromID, toID string) error {
	if d.sealed {
		return fmt.Errorf("prov: wire %s: %w", kind, ErrDocumentSealed)
	}
	if !d.HasNode(fromID) {
		return fmt.Errorf("prov: %s from %q: %w", kind, fromID, ErrDanglingReference)
	}
	if !d.HasNode(toID) {
		return fmt.Errorf("prov: %s to %q: %w", kind, toID, ErrDanglingReference)
	}
	*target = append(*target, Relation{Kind: kind, FromID: fromID, ToID: toID})
	return nil
}
