package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provkit/provkit/attr"
)

func TestSampleValidate(t *testing.T) {
	assert.NoError(t, NewSample("S1").Validate())
	assert.ErrorIs(t, NewSample("").Validate(), ErrInvalidProject)
	assert.ErrorIs(t, (&Sample{Name: "S1"}).Validate(), ErrInvalidProject)
}

func TestSampleKeysSorted(t *testing.T) {
	s := NewSample("S1").
		AddFile(NewFile("reads", "/x/reads.fq", true)).
		AddFile(NewFile("contigs", "/x/contigs.fa", false)).
		AddProgram(NewProgram("prodigal")).
		AddProgram(NewProgram("blastn"))

	assert.Equal(t, []string{"contigs", "reads"}, s.FileKeys())
	assert.Equal(t, []string{"blastn", "prodigal"}, s.ProgramKeys())
}

func TestFileAttributeMap(t *testing.T) {
	f := NewFile("reads", "/x/reads.fq", true).
		SetMeta("format", attr.String("fastq")).
		SetMeta("coverage", attr.Number(30))

	m := f.AttributeMap()
	assert.Equal(t, []string{"name", "path", "exists", "format", "coverage"}, m.Keys())

	exists, ok := m.Get("exists")
	require.True(t, ok)
	assert.True(t, exists.BoolVal())
}
