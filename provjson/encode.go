package provjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/provkit/provkit/prov"
)

// ErrUnsealedDocument indicates an export was attempted on a document that
// is still under construction. Only sealed documents are exported, so the
// output always reflects a complete assembly.
var ErrUnsealedDocument = errors.New("document is not sealed")

// scope is the serialized form of one graph scope: the document itself or
// one bundle. Node maps are keyed by qualified identifier; relation maps by
// a per-scope ordinal so the export is lossless for parallel edges.
type scope struct {
	Prefix map[string]string `json:"prefix,omitempty"`

	Entity   map[string]map[string]json.RawMessage `json:"entity,omitempty"`
	Activity map[string]map[string]json.RawMessage `json:"activity,omitempty"`
	Agent    map[string]map[string]json.RawMessage `json:"agent,omitempty"`

	Bundle map[string]*scope `json:"bundle,omitempty"`

	WasDerivedFrom    map[string]edge `json:"wasDerivedFrom,omitempty"`
	WasGeneratedBy    map[string]edge `json:"wasGeneratedBy,omitempty"`
	WasAssociatedWith map[string]edge `json:"wasAssociatedWith,omitempty"`
	WasAttributedTo   map[string]edge `json:"wasAttributedTo,omitempty"`
}

// edge is one serialized relation. The role names follow the PROV-JSON
// vocabulary for each relation kind.
type edge struct {
	GeneratedEntity string `json:"prov:generatedEntity,omitempty"`
	UsedEntity      string `json:"prov:usedEntity,omitempty"`
	Entity          string `json:"prov:entity,omitempty"`
	Activity        string `json:"prov:activity,omitempty"`
	Agent           string `json:"prov:agent,omitempty"`
}

// Marshal serializes a sealed document to PROV-JSON. The export is
// lossless: every namespace, node, attribute, bundle, and relation appears
// in the output, and equal documents always serialize to equal bytes.
func Marshal(doc *prov.Document) ([]byte, error) {
	s, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// MarshalIndent is like Marshal with an indented layout for human readers.
func MarshalIndent(doc *prov.Document, prefix, indent string) ([]byte, error) {
	s, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(s, prefix, indent)
}

func encodeDocument(doc *prov.Document) (*scope, error) {
	if doc == nil {
		return nil, fmt.Errorf("provjson: nil document: %w", ErrUnsealedDocument)
	}
	if !doc.Sealed() {
		return nil, fmt.Errorf("provjson: %w", ErrUnsealedDocument)
	}

	s, err := encodeScope(doc.Namespaces(), "", doc.Nodes(), doc.Relations())
	if err != nil {
		return nil, err
	}

	for _, b := range doc.Bundles() {
		bs, err := encodeScope(b.Namespaces(), b.DefaultNamespace(), b.Nodes(), b.Relations())
		if err != nil {
			return nil, err
		}
		if s.Bundle == nil {
			s.Bundle = make(map[string]*scope)
		}
		s.Bundle[b.ID()] = bs
	}
	return s, nil
}

func encodeScope(namespaces []*prov.Namespace, defaultNS string, nodes []*prov.Node, relations []prov.Relation) (*scope, error) {
	s := &scope{}

	if len(namespaces) > 0 || defaultNS != "" {
		s.Prefix = make(map[string]string, len(namespaces)+1)
		if defaultNS != "" {
			s.Prefix["default"] = defaultNS
		}
		for _, ns := range namespaces {
			s.Prefix[ns.Prefix] = ns.Label
		}
	}

	for _, n := range nodes {
		body, err := encodeNode(n)
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case prov.KindEntity:
			if s.Entity == nil {
				s.Entity = make(map[string]map[string]json.RawMessage)
			}
			s.Entity[n.ID] = body
		case prov.KindActivity:
			if s.Activity == nil {
				s.Activity = make(map[string]map[string]json.RawMessage)
			}
			s.Activity[n.ID] = body
		case prov.KindAgent:
			if s.Agent == nil {
				s.Agent = make(map[string]map[string]json.RawMessage)
			}
			s.Agent[n.ID] = body
		default:
			return nil, fmt.Errorf("provjson: node %q has unknown kind %q", n.ID, n.Kind)
		}
	}

	derivations, generations, associations, attributions := 0, 0, 0, 0
	for _, rel := range relations {
		switch rel.Kind {
		case prov.RelationDerivation:
			derivations++
			if s.WasDerivedFrom == nil {
				s.WasDerivedFrom = make(map[string]edge)
			}
			s.WasDerivedFrom[relationKey("wdf", derivations)] = edge{
				GeneratedEntity: rel.FromID,
				UsedEntity:      rel.ToID,
			}
		case prov.RelationGeneration:
			generations++
			if s.WasGeneratedBy == nil {
				s.WasGeneratedBy = make(map[string]edge)
			}
			s.WasGeneratedBy[relationKey("wgb", generations)] = edge{
				Entity:   rel.FromID,
				Activity: rel.ToID,
			}
		case prov.RelationAssociation:
			associations++
			if s.WasAssociatedWith == nil {
				s.WasAssociatedWith = make(map[string]edge)
			}
			s.WasAssociatedWith[relationKey("waw", associations)] = edge{
				Activity: rel.FromID,
				Agent:    rel.ToID,
			}
		case prov.RelationAttribution:
			attributions++
			if s.WasAttributedTo == nil {
				s.WasAttributedTo = make(map[string]edge)
			}
			s.WasAttributedTo[relationKey("wat", attributions)] = edge{
				Entity: rel.FromID,
				Agent:  rel.ToID,
			}
		default:
			return nil, fmt.Errorf("provjson: relation %s -> %s has unknown kind %q", rel.FromID, rel.ToID, rel.Kind)
		}
	}

	return s, nil
}

// encodeNode serializes a node's attribute bag, plus the time window for
// activities. Values marshal as their natural JSON types.
func encodeNode(n *prov.Node) (map[string]json.RawMessage, error) {
	body := make(map[string]json.RawMessage, len(n.Attributes)+2)
	for _, a := range n.Attributes {
		raw, err := json.Marshal(a.Value)
		if err != nil {
			return nil, fmt.Errorf("provjson: node %q attribute %q: %w", n.ID, a.Key, err)
		}
		body[a.Key] = raw
	}

	if n.Kind == prov.KindActivity {
		start, err := json.Marshal(n.StartTime.Format(time.RFC3339Nano))
		if err != nil {
			return nil, err
		}
		end, err := json.Marshal(n.EndTime.Format(time.RFC3339Nano))
		if err != nil {
			return nil, err
		}
		body["prov:startTime"] = start
		body["prov:endTime"] = end
	}
	return body, nil
}

// relationKey builds a stable per-scope relation identifier, e.g. "_:wdf1".
func relationKey(kind string, ordinal int) string {
	return fmt.Sprintf("_:%s%d", kind, ordinal)
}
