// Package prov implements the provenance graph document model: namespaces,
// typed nodes (entities, activities, agents), per-sample bundles, and typed
// relations between nodes.
//
// A Document is built once, top to bottom, by a single writer. It maintains
// three structural guarantees while it is being built:
//
//   - namespace prefixes are unique within their scope (the document-global
//     scope and each bundle's local scope are independent),
//   - node identifiers are unique across the whole document, including all
//     bundles,
//   - a relation can only be added when both endpoint identifiers already
//     resolve to nodes in the document.
//
// Node identifiers are derived deterministically from the owning namespace
// prefix and the node name (prefix:name), so rebuilding a document from the
// same input yields identical identifiers.
//
// Once assembly finishes the document is sealed with Seal; any further
// mutation fails with ErrDocumentSealed. A sealed document exposes
// enumeration methods (Namespaces, Nodes, Bundles, Relations) sufficient
// for a serializer to emit a complete, lossless export.
//
// Relations follow the W3C PROV vocabulary:
//
//   - WasDerivedFrom: entity → source entity (a file derived from its sample)
//   - WasGeneratedBy: entity → activity that produced it
//   - WasAssociatedWith: activity → responsible agent
//   - WasAttributedTo: entity → responsible agent
package prov
