// Package provjson serializes finished provenance documents to PROV-JSON.
//
// The export mirrors the document structure: a prefix table per scope,
// nodes grouped under "entity", "activity", and "agent" keyed by qualified
// identifier, one "bundle" member per sample bundle, and relation maps
// ("wasDerivedFrom" and friends) keyed by per-scope ordinals.
//
//	doc, err := provkit.Assemble(ctx, project)
//	if err != nil {
//	    return err
//	}
//	data, err := provjson.MarshalIndent(doc, "", "  ")
//
// Only sealed documents are exported; Marshal fails with
// ErrUnsealedDocument otherwise. Equal documents always serialize to equal
// bytes.
package provjson
