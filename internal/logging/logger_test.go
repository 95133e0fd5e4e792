package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"archiwum/internal/config"
)

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, FileName(time.Now())))
	require.NoError(t, err)
	return string(data)
}

func TestGetBeforeInitializeIsNop(t *testing.T) {
	require.NoError(t, Sync())
	l := Get(CategoryStore)
	assert.NotNil(t, l)
	assert.Empty(t, Path())
	l.Info("dropped")
}

func TestInitializeWritesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, config.LoggingConfig{Level: "info", Format: "text"}))
	t.Cleanup(func() { _ = Sync() })

	assert.Equal(t, filepath.Join(dir, FileName(time.Now())), Path())

	Get(CategoryStore).Info("listed archive", zap.Int("entries", 3))
	Get(CategoryStore).Debug("hidden at info level")
	require.NoError(t, Sync())

	contents := readLog(t, dir)
	assert.Contains(t, contents, "store")
	assert.Contains(t, contents, "listed archive")
	assert.Contains(t, contents, `"entries": 3`)
	assert.NotContains(t, contents, "hidden at info level")
}

func TestInitializeJSONAndDebugMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(dir, config.LoggingConfig{Level: "error", Format: "json", DebugMode: true}))
	t.Cleanup(func() { _ = Sync() })

	Get(CategoryForm).Debug("edit", zap.String("selector", "$.info.notes"))
	require.NoError(t, Sync())

	line := strings.TrimSpace(readLog(t, dir))
	assert.True(t, strings.HasPrefix(line, "{"), line)
	assert.Contains(t, line, `"logger":"form"`)
	assert.Contains(t, line, `"selector":"$.info.notes"`)
}

func TestDisabledCategory(t *testing.T) {
	dir := t.TempDir()
	lc := config.LoggingConfig{Level: "info", Format: "text", Categories: map[string]bool{"watch": false}}
	require.NoError(t, Initialize(dir, lc))
	t.Cleanup(func() { _ = Sync() })

	Get(CategoryWatch).Info("watch event")
	Get(CategoryBoot).Info("booted")
	require.NoError(t, Sync())

	contents := readLog(t, dir)
	assert.NotContains(t, contents, "watch event")
	assert.Contains(t, contents, "booted")
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	err := Initialize(t.TempDir(), config.LoggingConfig{Level: "loud"})
	assert.ErrorContains(t, err, "parsing log level")
}

func TestFileName(t *testing.T) {
	day := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05_archiwum.log", FileName(day))
}
