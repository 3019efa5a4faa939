package prov

import (
	"time"

	"github.com/provkit/provkit/attr"
)

// NodeKind identifies the PROV node kind.
type NodeKind string

const (
	// KindEntity represents a piece of data (a project, sample, file, or
	// environment snapshot).
	KindEntity NodeKind = "entity"

	// KindActivity represents a process execution with a time window.
	KindActivity NodeKind = "activity"

	// KindAgent represents a responsible actor, typically a user.
	KindAgent NodeKind = "agent"
)

// IsValid returns true if the kind is one of the defined constants.
func (k NodeKind) IsValid() bool {
	switch k {
	case KindEntity, KindActivity, KindAgent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	return string(k)
}

// Attribute is a namespace-qualified key/value pair attached to a node.
// Key has the form "prefix:name"; Value is a scalar (lists are flattened
// by the encoder before they reach a node).
type Attribute struct {
	Key   string
	Value attr.Value
}

// Node is a single vertex in the provenance graph. ID is the qualified
// identifier (prefix:name, or a bare name under a bundle's default
// namespace). StartTime and EndTime are only meaningful for activities.
type Node struct {
	Kind       NodeKind
	ID         string
	Attributes []Attribute

	StartTime time.Time
	EndTime   time.Time
}

// nodeSet holds the nodes of one scope (the document-global scope or one
// bundle) in creation order.
type nodeSet struct {
	ordered []*Node
	byID    map[string]*Node
}

func newNodeSet() *nodeSet {
	return &nodeSet{byID: make(map[string]*Node)}
}

func (s *nodeSet) add(n *Node) {
	s.byID[n.ID] = n
	s.ordered = append(s.ordered, n)
}

func (s *nodeSet) get(id string) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

func (s *nodeSet) all() []*Node {
	out := make([]*Node, len(s.ordered))
	copy(out, s.ordered)
	return out
}
