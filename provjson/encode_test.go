package provjson

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provkit/provkit/attr"
	"github.com/provkit/provkit/prov"
)

func buildDocument(t *testing.T) *prov.Document {
	t.Helper()
	doc := prov.NewDocument()

	project, err := doc.AddNamespace("project", "demo")
	require.NoError(t, err)
	samples, err := doc.AddNamespace("samples", "Samples")
	require.NoError(t, err)
	users, err := doc.AddNamespace("users", "Users")
	require.NoError(t, err)

	_, err = doc.Entity(project, "demo", []prov.Attribute{
		{Key: "project:tag", Value: attr.String("demo")},
	})
	require.NoError(t, err)
	agent, err := doc.Agent(users, "vini")
	require.NoError(t, err)

	bundle, err := doc.Bundle(samples, "S1")
	require.NoError(t, err)
	require.NoError(t, bundle.SetDefaultNamespace("S1"))

	filesNS, err := bundle.AddNamespace("S1.files", "Files")
	require.NoError(t, err)
	programsNS, err := bundle.AddNamespace("S1.programs", "Programs")
	require.NoError(t, err)

	sample, err := bundle.Entity(nil, "S1", nil)
	require.NoError(t, err)
	file, err := bundle.Entity(filesNS, "reads", []prov.Attribute{
		{Key: "reads:path", Value: attr.String("/x/reads.fq")},
		{Key: "reads:exists", Value: attr.Bool(true)},
	})
	require.NoError(t, err)

	start := time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(42 * time.Minute)
	activity, err := bundle.Activity(programsNS, "prodigal", start, end, nil)
	require.NoError(t, err)

	require.NoError(t, bundle.WasDerivedFrom(file.ID, sample.ID))
	require.NoError(t, bundle.WasGeneratedBy(file.ID, activity.ID))
	require.NoError(t, doc.WasAssociatedWith(activity.ID, agent.ID))
	require.NoError(t, doc.WasAttributedTo("project:demo", agent.ID))

	doc.Seal()
	return doc
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(buildDocument(t))
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))

	var prefixes map[string]string
	require.NoError(t, json.Unmarshal(out["prefix"], &prefixes))
	assert.Equal(t, map[string]string{
		"project": "demo",
		"samples": "Samples",
		"users":   "Users",
	}, prefixes)

	var entities map[string]map[string]any
	require.NoError(t, json.Unmarshal(out["entity"], &entities))
	require.Contains(t, entities, "project:demo")
	assert.Equal(t, "demo", entities["project:demo"]["project:tag"])

	var agents map[string]map[string]any
	require.NoError(t, json.Unmarshal(out["agent"], &agents))
	assert.Contains(t, agents, "users:vini")

	var associations map[string]map[string]string
	require.NoError(t, json.Unmarshal(out["wasAssociatedWith"], &associations))
	assert.Equal(t, map[string]string{
		"prov:activity": "S1.programs:prodigal",
		"prov:agent":    "users:vini",
	}, associations["_:waw1"])

	var attributions map[string]map[string]string
	require.NoError(t, json.Unmarshal(out["wasAttributedTo"], &attributions))
	assert.Equal(t, map[string]string{
		"prov:entity": "project:demo",
		"prov:agent":  "users:vini",
	}, attributions["_:wat1"])
}

func TestMarshalBundle(t *testing.T) {
	data, err := Marshal(buildDocument(t))
	require.NoError(t, err)

	var out struct {
		Bundle map[string]json.RawMessage `json:"bundle"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Contains(t, out.Bundle, "samples:S1")

	var b map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out.Bundle["samples:S1"], &b))

	var prefixes map[string]string
	require.NoError(t, json.Unmarshal(b["prefix"], &prefixes))
	assert.Equal(t, "S1", prefixes["default"])
	assert.Contains(t, prefixes, "S1.files")

	var entities map[string]map[string]any
	require.NoError(t, json.Unmarshal(b["entity"], &entities))
	assert.Contains(t, entities, "S1")
	require.Contains(t, entities, "S1.files:reads")
	assert.Equal(t, "/x/reads.fq", entities["S1.files:reads"]["reads:path"])
	assert.Equal(t, true, entities["S1.files:reads"]["reads:exists"])

	var activities map[string]map[string]any
	require.NoError(t, json.Unmarshal(b["activity"], &activities))
	require.Contains(t, activities, "S1.programs:prodigal")
	assert.Equal(t, "2021-03-01T10:00:00Z", activities["S1.programs:prodigal"]["prov:startTime"])
	assert.Equal(t, "2021-03-01T10:42:00Z", activities["S1.programs:prodigal"]["prov:endTime"])

	var derivations map[string]map[string]string
	require.NoError(t, json.Unmarshal(b["wasDerivedFrom"], &derivations))
	assert.Equal(t, map[string]string{
		"prov:generatedEntity": "S1.files:reads",
		"prov:usedEntity":      "S1",
	}, derivations["_:wdf1"])

	var generations map[string]map[string]string
	require.NoError(t, json.Unmarshal(b["wasGeneratedBy"], &generations))
	assert.Equal(t, map[string]string{
		"prov:entity":   "S1.files:reads",
		"prov:activity": "S1.programs:prodigal",
	}, generations["_:wgb1"])
}

func TestMarshalDeterministic(t *testing.T) {
	doc := buildDocument(t)

	first, err := Marshal(doc)
	require.NoError(t, err)
	second, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(buildDocument(t), "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"prefix\"")
}

func TestMarshalUnsealed(t *testing.T) {
	_, err := Marshal(prov.NewDocument())
	assert.ErrorIs(t, err, ErrUnsealedDocument)

	_, err = Marshal(nil)
	assert.ErrorIs(t, err, ErrUnsealedDocument)
}

func TestMarshalEmptyDocument(t *testing.T) {
	doc := prov.NewDocument()
	doc.Seal()

	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
