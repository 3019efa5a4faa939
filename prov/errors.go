package prov

import "errors"

// Sentinel errors for document construction.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrDuplicateNamespace indicates that a namespace prefix is already
	// registered in the scope it was added to. Global and bundle-local
	// scopes are checked independently.
	ErrDuplicateNamespace = errors.New("duplicate namespace prefix")

	// ErrDuplicateNode indicates that a node identifier already exists
	// somewhere in the document, either in the global scope or inside any
	// bundle.
	ErrDuplicateNode = errors.New("duplicate node identifier")

	// ErrInvalidActivityWindow indicates that an activity was created with
	// a start time after its end time. The bounds are never silently
	// swapped.
	ErrInvalidActivityWindow = errors.New("activity start is after end")

	// ErrDanglingReference indicates that a relation endpoint does not
	// resolve to any node in the document at the time the relation is
	// added. Relations are never deferred or back-patched.
	ErrDanglingReference = errors.New("relation endpoint does not exist")

	// ErrEncoding indicates that attribute encoding failed, typically
	// because a non-empty attribute map was encoded without an owning
	// namespace.
	ErrEncoding = errors.New("attribute encoding failed")

	// ErrDocumentSealed indicates a mutation was attempted on a document
	// that has already been sealed. A sealed document is immutable; a
	// changed input requires a fresh assembly.
	ErrDocumentSealed = errors.New("document is sealed")
)
