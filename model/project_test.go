package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provkit/provkit/attr"
)

func TestProjectValidate(t *testing.T) {
	tests := []struct {
		name    string
		project *Project
		wantErr bool
	}{
		{
			name:    "valid empty project",
			project: NewProject("demo"),
			wantErr: false,
		},
		{
			name:    "nil project",
			project: nil,
			wantErr: true,
		},
		{
			name:    "empty tag",
			project: NewProject(""),
			wantErr: true,
		},
		{
			name:    "nil sample map",
			project: &Project{Tag: "demo", Envs: map[EnvKey]*Environment{}},
			wantErr: true,
		},
		{
			name:    "nil env map",
			project: &Project{Tag: "demo", Samples: map[string]*Sample{}},
			wantErr: true,
		},
		{
			name: "sample key does not match sample name",
			project: &Project{
				Tag:     "demo",
				Samples: map[string]*Sample{"S1": NewSample("S2")},
				Envs:    map[EnvKey]*Environment{},
			},
			wantErr: true,
		},
		{
			name: "nil sample",
			project: &Project{
				Tag:     "demo",
				Samples: map[string]*Sample{"S1": nil},
				Envs:    map[EnvKey]*Environment{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProject)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSampleNamesSorted(t *testing.T) {
	p := NewProject("demo").
		AddSample(NewSample("S3")).
		AddSample(NewSample("S1")).
		AddSample(NewSample("S2"))

	assert.Equal(t, []string{"S1", "S2", "S3"}, p.SampleNames())
	assert.Equal(t, 3, p.Len())
}

func TestEnvKeysSorted(t *testing.T) {
	p := NewProject("demo")
	p.AddEnvironment("zed", NewEnvironment("zed", "host", map[string]string{"A": "1"}))
	p.AddEnvironment("amy", NewEnvironment("amy", "host", map[string]string{"A": "1"}))
	p.AddEnvironment("amy", NewEnvironment("amy", "host", map[string]string{"B": "2"}))

	keys := p.EnvKeys()
	require.Len(t, keys, 3)
	assert.Equal(t, "amy", keys[0].User)
	assert.Equal(t, "amy", keys[1].User)
	assert.Equal(t, "zed", keys[2].User)
	assert.Less(t, keys[0].Signature, keys[1].Signature)
}

func TestProjectAttributeMap(t *testing.T) {
	p := NewProject("demo")
	p.Metadata.Set("pipeline", attr.String("genome_annotation"))

	m := p.AttributeMap()
	assert.Equal(t, []string{"tag", "pipeline"}, m.Keys())

	tag, ok := m.Get("tag")
	require.True(t, ok)
	assert.Equal(t, "demo", tag.StringVal())
}
