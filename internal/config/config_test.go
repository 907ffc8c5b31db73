package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "toyc.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeManifest(t, `entry = "main.toy"`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "main.toy", m.Entry)
	require.Equal(t, defaultUnrollFactor, m.UnrollFactor)
	require.True(t, m.Optimize)
}

func TestLoadHonorsExplicitFields(t *testing.T) {
	path := writeManifest(t, `
entry = "main.toy"
unroll-factor = 4
optimize = false
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, m.UnrollFactor)
	require.False(t, m.Optimize)
}

func TestLoadRejectsMissingEntry(t *testing.T) {
	path := writeManifest(t, `unroll-factor = 2`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsNegativeUnrollFactor(t *testing.T) {
	path := writeManifest(t, `
entry = "main.toy"
unroll-factor = -1
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	m := Default()
	require.Equal(t, defaultUnrollFactor, m.UnrollFactor)
	require.True(t, m.Optimize)
}
