// Package attr provides the closed attribute value model used for domain
// metadata and graph node attributes.
//
// Domain objects carry arbitrary key/value metadata. Instead of passing
// unconstrained values around, the package models them as a closed variant
// type (Value) covering strings, numbers, booleans, timestamps, and string
// lists, plus an insertion-ordered map (Map) so that attribute output order
// is stable and reproducible.
//
// Basic usage:
//
//	m := attr.NewMap().
//	    Set("path", attr.String("/data/reads.fq")).
//	    Set("exists", attr.Bool(true))
//
//	for _, key := range m.Keys() {
//	    v, _ := m.Get(key)
//	    fmt.Println(key, v.String())
//	}
package attr
