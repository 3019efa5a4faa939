package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "provkit.yaml", `
attributes: false
denylist:
  - scratch
  - workdir
run_associations: true
project_attribution: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Attributes)
	assert.False(t, *cfg.Attributes)
	assert.Equal(t, []string{"scratch", "workdir"}, cfg.Denylist)
	assert.True(t, cfg.RunAssociations)
	assert.True(t, cfg.ProjectAttribution)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "provkit.json",
		`{"denylist": ["scratch"], "run_associations": true}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Nil(t, cfg.Attributes)
	assert.Equal(t, []string{"scratch"}, cfg.Denylist)
	assert.True(t, cfg.RunAssociations)
	assert.False(t, cfg.ProjectAttribution)
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "provkit.yml", "run_associations: true\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.RunAssociations)
}

func TestLoadDirectoryWithoutConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no provkit.yaml")
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "provkit.toml", "attributes = false\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "provkit.yaml", "denylist: [unclosed\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	off := false
	cfg := &Config{
		Attributes:         &off,
		Denylist:           []string{"scratch"},
		RunAssociations:    true,
		ProjectAttribution: true,
	}
	assert.Len(t, cfg.Options(), 4)

	assert.Empty(t, (&Config{}).Options())
	assert.Empty(t, (*Config)(nil).Options())

	on := true
	assert.Empty(t, (&Config{Attributes: &on}).Options())
}
