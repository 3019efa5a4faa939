package prov

import (
	"fmt"

	"github.com/provkit/provkit/attr"
)

// EncodeAttributes converts a metadata map into namespace-qualified
// attribute pairs in the map's insertion order. Each output key is
// "prefix:key". Scalar values pass through unchanged; list values are
// flattened to a single string so the attribute model stays flat.
//
// Keys listed in exclude are skipped; callers use this to keep large
// backing collections (such as a project's sample map) out of the
// attribute bag.
//
// Encoding a non-empty map without a namespace fails with ErrEncoding.
// An empty or nil map encodes to nil regardless of the namespace.
func EncodeAttributes(ns *Namespace, m *attr.Map, exclude ...string) ([]Attribute, error) {
	if m.Len() == 0 {
		return nil, nil
	}
	if ns == nil {
		return nil, fmt.Errorf("prov: nil namespace for non-empty attribute map: %w", ErrEncoding)
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, key := range exclude {
		skip[key] = struct{}{}
	}

	out := make([]Attribute, 0, m.Len())
	for _, key := range m.Keys() {
		if _, excluded := skip[key]; excluded {
			continue
		}
		v, _ := m.Get(key)
		out = append(out, Attribute{
			Key:   ns.Prefix + ":" + key,
			Value: v.Flatten(),
		})
	}
	return out, nil
}
