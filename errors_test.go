package provkit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provkit/provkit/model"
	"github.com/provkit/provkit/prov"
)

func TestErrorFormat(t *testing.T) {
	err := &Error{Op: "Assembler.BuildBundles", Kind: KindDuplicate, Err: prov.ErrDuplicateNode}
	assert.Equal(t, "provkit: Assembler.BuildBundles (duplicate): duplicate node identifier", err.Error())

	bare := &Error{Op: "Assembler.Assemble", Kind: KindState}
	assert.Equal(t, "provkit: Assembler.Assemble: state", bare.Error())
}

func TestErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("program %q: %w", "prodigal", model.ErrEmptyRunHistory)
	err := wrapErr("Assembler.BuildBundles", inner)

	assert.ErrorIs(t, err, model.ErrEmptyRunHistory)

	var e *Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, "Assembler.BuildBundles", e.Op)
	assert.Equal(t, KindValidation, e.Kind)
}

func TestErrorIsMatchesKindAndOp(t *testing.T) {
	err := &Error{Op: "Assembler.WireRelations", Kind: KindReference, Err: prov.ErrDanglingReference}

	assert.ErrorIs(t, err, &Error{Kind: KindReference})
	assert.ErrorIs(t, err, &Error{Op: "Assembler.WireRelations", Kind: KindReference})
	assert.NotErrorIs(t, err, &Error{Kind: KindDuplicate})
	assert.NotErrorIs(t, err, &Error{Op: "Assembler.BuildBundles", Kind: KindReference})
}

func TestWrapErrNil(t *testing.T) {
	assert.NoError(t, wrapErr("Assembler.OpenNamespaces", nil))
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{model.ErrInvalidProject, KindValidation},
		{model.ErrEmptyRunHistory, KindValidation},
		{model.ErrSparseRunHistory, KindValidation},
		{prov.ErrInvalidActivityWindow, KindValidation},
		{prov.ErrDuplicateNamespace, KindDuplicate},
		{prov.ErrDuplicateNode, KindDuplicate},
		{prov.ErrEncoding, KindEncoding},
		{prov.ErrDanglingReference, KindReference},
		{prov.ErrDocumentSealed, KindState},
		{ErrAssemblerConsumed, KindState},
		{errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, kindOf(tc.err), "kind of %v", tc.err)
		assert.Equal(t, tc.kind, kindOf(fmt.Errorf("wrapped: %w", tc.err)), "kind of wrapped %v", tc.err)
	}
}
