package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntol/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	for _, dir := range []string{
		filepath.Join(tmpDir, ".config", "gntol"),
		filepath.Join(tmpDir, ".cache", "gntol"),
		filepath.Join(tmpDir, ".local", "share", "gntol", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
	}

	// second call should succeed
	require.NoError(t, EnsureDirs(tmpDir))
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	path := config.ConfigFilePath(tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	// existing file is not overwritten
	require.NoError(t, os.WriteFile(path, []byte("log:\n"), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log:\n", string(data))
}

// TestConfigYAML checks that the embedded config matches defaults.
func TestConfigYAML(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &cfg))

	def := config.New()
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.Build, cfg.Build)
	assert.Equal(t, def.Query, cfg.Query)
	assert.Zero(t, cfg.JobsNumber)
}

func TestOpenOptional(t *testing.T) {
	tmpDir := t.TempDir()

	f, err := OpenOptional(filepath.Join(tmpDir, "none.txt"))
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = OpenOptional("")
	require.NoError(t, err)
	assert.Nil(t, f)

	path := filepath.Join(tmpDir, "some.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))
	f, err = OpenOptional(path)
	require.NoError(t, err)
	require.NotNil(t, f)
	f.Close()
	assert.Equal(t, int64(3), Size(path))

	_, err = Open(filepath.Join(tmpDir, "none.txt"))
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picked.txt")
	content := "# picked nodes\nhomo sapiens\n\n  pan troglodytes  \nficus\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	res, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"homo sapiens", "pan troglodytes", "ficus"}, res)

	_, err = ReadLines(filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}
