package prov

import "fmt"

// Namespace is a named scope that qualifies node identifiers and attribute
// keys. Prefix is unique within the scope the namespace was registered in;
// Label is a human-readable description or URI.
type Namespace struct {
	Prefix string
	Label  string
}

// QualifiedID derives a node identifier from a namespace prefix and a name.
// A nil namespace yields the bare name, which is only meaningful inside a
// bundle with a default namespace.
func QualifiedID(ns *Namespace, name string) string {
	if ns == nil {
		return name
	}
	return ns.Prefix + ":" + name
}

// namespaceSet is a write-once registry of namespaces for a single scope.
// Registration order is preserved for enumeration.
type namespaceSet struct {
	ordered  []*Namespace
	byPrefix map[string]*Namespace
}

func newNamespaceSet() *namespaceSet {
	return &namespaceSet{byPrefix: make(map[string]*Namespace)}
}

func (s *namespaceSet) add(prefix, label string) (*Namespace, error) {
	if prefix == "" {
		return nil, fmt.Errorf("prov: empty namespace prefix")
	}
	if _, ok := s.byPrefix[prefix]; ok {
		return nil, fmt.Errorf("prov: prefix %q: %w", prefix, ErrDuplicateNamespace)
	}
	ns := &Namespace{Prefix: prefix, Label: label}
	s.byPrefix[prefix] = ns
	s.ordered = append(s.ordered, ns)
	return ns, nil
}

func (s *namespaceSet) has(prefix string) bool {
	_, ok := s.byPrefix[prefix]
	return ok
}

func (s *namespaceSet) all() []*Namespace {
	out := make([]*Namespace, len(s.ordered))
	copy(out, s.ordered)
	return out
}
