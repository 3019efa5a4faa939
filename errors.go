package provkit

import (
	"errors"
	"fmt"

	"github.com/provkit/provkit/model"
	"github.com/provkit/provkit/prov"
)

// Sentinel errors for the top-level assembly API.
// Component-level sentinels live in the packages that raise them
// (prov.ErrDuplicateNode, model.ErrEmptyRunHistory, ...); they remain
// matchable with errors.Is() through the wrapping Error type.
var (
	// ErrAssemblerConsumed indicates that an Assembler was invoked twice.
	// Assembly is one-shot: a new document requires a new Assembler.
	ErrAssemblerConsumed = errors.New("assembler already consumed")
)

// Error kinds categorize assembly failures.
const (
	// KindValidation covers malformed input (bad project shape, empty or
	// sparse run histories, inverted activity windows).
	KindValidation = "validation"

	// KindDuplicate covers identifier collisions (namespace prefixes,
	// node identifiers).
	KindDuplicate = "duplicate"

	// KindEncoding covers attribute serialization failures.
	KindEncoding = "encoding"

	// KindReference covers relations whose endpoints do not exist.
	KindReference = "reference"

	// KindState covers misuse of the assembly lifecycle (reusing a
	// consumed assembler, mutating a sealed document).
	KindState = "state"

	// KindInternal covers failures that do not map to a known category.
	KindInternal = "internal"
)

// Error is the structured error returned by assembly operations. It wraps
// the underlying component error with the operation that failed and an
// error kind, and supports errors.Is / errors.As through Unwrap.
type Error struct {
	// Op is the operation that failed (e.g., "Assembler.BuildBundles").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindDuplicate).
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provkit: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("provkit: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind (and op, when the target sets one), or
// delegates to the underlying error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			return t.Op == "" || e.Op == t.Op
		}
		return false
	}
	return errors.Is(e.Err, target)
}

// wrapErr builds an *Error with the kind derived from the underlying
// sentinel.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kindOf(err), Err: err}
}

// kindOf maps component sentinels onto error kinds.
func kindOf(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidProject),
		errors.Is(err, model.ErrEmptyRunHistory),
		errors.Is(err, model.ErrSparseRunHistory),
		errors.Is(err, prov.ErrInvalidActivityWindow):
		return KindValidation
	case errors.Is(err, prov.ErrDuplicateNamespace),
		errors.Is(err, prov.ErrDuplicateNode):
		return KindDuplicate
	case errors.Is(err, prov.ErrEncoding):
		return KindEncoding
	case errors.Is(err, prov.ErrDanglingReference):
		return KindReference
	case errors.Is(err, prov.ErrDocumentSealed),
		errors.Is(err, ErrAssemblerConsumed):
		return KindState
	default:
		return KindInternal
	}
}
