package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDirFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	t.Setenv(EnvHome, dir)

	got, err := BaseDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBaseDirDefaultsToExecutableDir(t *testing.T) {
	t.Setenv(EnvHome, "")

	got, err := BaseDir()
	require.NoError(t, err)

	exe, err := os.Executable()
	require.NoError(t, err)
	exe, err = filepath.EvalSymlinks(exe)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(exe), got)
}

func TestEnsureFailsOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	err := Ensure(filepath.Join(file, "sub"))
	assert.ErrorContains(t, err, "creating directory")
}

func TestLayout(t *testing.T) {
	assert.Equal(t, filepath.Join("base", "logs"), LogsDir("base"))
	assert.Equal(t, filepath.Join("base", "config.yaml"), ConfigFile("base"))
}
