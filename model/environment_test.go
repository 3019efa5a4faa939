package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentSignatureDeterminism(t *testing.T) {
	vars := map[string]string{"PATH": "/usr/bin", "HOME": "/home/vini"}

	e1 := NewEnvironment("vini", "node1", vars)
	e2 := NewEnvironment("vini", "node1", vars)

	assert.Equal(t, e1.Signature, e2.Signature)
	assert.True(t, strings.HasPrefix(e1.Signature, "env-"))
}

func TestEnvironmentSignatureChangesWithVariables(t *testing.T) {
	e1 := NewEnvironment("vini", "node1", map[string]string{"PATH": "/usr/bin"})
	e2 := NewEnvironment("vini", "node1", map[string]string{"PATH": "/opt/bin"})

	assert.NotEqual(t, e1.Signature, e2.Signature)
}

func TestEnvironmentVariablesSorted(t *testing.T) {
	e := NewEnvironment("vini", "node1", map[string]string{
		"ZULU":  "z",
		"ALPHA": "a",
		"MIKE":  "m",
	})

	assert.Equal(t, []string{"ALPHA", "MIKE", "ZULU"}, e.Variables.Keys())
}

func TestEnvironmentAttributeMap(t *testing.T) {
	e := NewEnvironment("vini", "node1", map[string]string{"PATH": "/usr/bin"})

	m := e.AttributeMap()
	assert.Equal(t, []string{"user", "hostname", "PATH"}, m.Keys())

	u, ok := m.Get("user")
	require.True(t, ok)
	assert.Equal(t, "vini", u.StringVal())
}

func TestCaptureEnvironment(t *testing.T) {
	t.Setenv("PROVKIT_TEST_MARKER", "1")

	env, err := CaptureEnvironment()
	require.NoError(t, err)

	assert.NotEmpty(t, env.User)
	assert.NotEmpty(t, env.Hostname)
	assert.NotEmpty(t, env.Signature)

	v, ok := env.Variables.Get("PROVKIT_TEST_MARKER")
	require.True(t, ok)
	assert.Equal(t, "1", v.StringVal())
}
