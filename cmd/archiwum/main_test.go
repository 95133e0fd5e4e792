package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiwum/internal/contract"
	"archiwum/internal/logging"
	"archiwum/internal/paths"
	"archiwum/internal/store"
	"archiwum/internal/value"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}

// withHome points the base directory at a fresh temp dir.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(paths.EnvHome, home)
	for _, env := range []string{"ARCHIWUM_ARCHIVE_DIR", "ARCHIWUM_LOG_LEVEL", "ARCHIWUM_THEME", "ARCHIWUM_DEBUG"} {
		t.Setenv(env, "")
	}
	return home
}

// run executes the root command with fresh flag values.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	verbose, configPath, archiveDir = false, "", ""
	newOpts = newFlags{price: "0"}
	listJSON, showJSON, configForce = false, false, false
	t.Cleanup(func() { _ = logging.Sync() })

	rootCmd.SetArgs(args)
	var err error
	out := captureOutput(t, func() { err = rootCmd.Execute() })
	return out, err
}

func createJan(t *testing.T) string {
	t.Helper()
	out, err := run(t, "new",
		"--name", "Jan Kowalski", "--phone", "600100200",
		"--price", "250", "--days", "3",
		"--description", "cracked screen", "--description", "no sound",
		"--date", "2024-03-05T14:30:00")
	require.NoError(t, err, out)
	return out
}

func TestNewAndList(t *testing.T) {
	home := withHome(t)
	out := createJan(t)

	name := "2024-03-05_14-30-00.repair-contract.toml"
	assert.Contains(t, out, "Created")
	assert.Contains(t, out, name)
	assert.FileExists(t, filepath.Join(home, "archiwum", name))

	out, err := run(t, "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 contracts in")
	assert.Contains(t, out, "Jan Kowalski")
	assert.Contains(t, out, "250.00")
	assert.Contains(t, out, "cracked screen; no sound")

	logs, err := os.ReadDir(paths.LogsDir(home))
	require.NoError(t, err)
	assert.NotEmpty(t, logs)
}

func TestListEmpty(t *testing.T) {
	withHome(t)
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No contracts in")
}

func TestListJSON(t *testing.T) {
	withHome(t)
	createJan(t)

	out, err := run(t, "list", "--json")
	require.NoError(t, err)
	v, err := value.Parse([]byte(out))
	require.NoError(t, err, out)
	require.Equal(t, 1, v.Len())

	name, ok := v.At(value.Path(value.Index(0), value.Field("info"), value.Field("customer"), value.Field("name")))
	require.True(t, ok)
	assert.Equal(t, "Jan Kowalski", name.AsString())
}

func TestShow(t *testing.T) {
	withHome(t)
	createJan(t)
	name := "2024-03-05_14-30-00.repair-contract.toml"

	out, err := run(t, "show", name)
	require.NoError(t, err, out)
	assert.Contains(t, out, "$.info.customer.name")
	assert.Contains(t, out, "Jan Kowalski")
	assert.Contains(t, out, "$.info.description[1]")
	assert.NotContains(t, out, "Total of repairs")

	out, err = run(t, "show", "--json", name)
	require.NoError(t, err, out)
	assert.Contains(t, out, `"name": "Jan Kowalski"`)
	assert.Contains(t, out, `"date": "2024-03-05T14:30:00"`)
}

func TestShowFinalProtocolTotal(t *testing.T) {
	home := withHome(t)
	db, err := store.New(filepath.Join(home, "archiwum"))
	require.NoError(t, err)

	c := contract.New()
	c.Date = contract.At(time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local))
	fp := contract.NewFinalProtocol()
	fp.PerformedRepairs = []contract.PerformedRepair{{ID: "r1", Name: "screen", Price: decimal.RequireFromString("20")}}
	fp.PartsReplaced = []contract.ReplacementPart{{ID: "p1", Name: "glass", Price: decimal.RequireFromString("10")}}
	c.FinalProtocol = &fp
	entry, err := db.Create(context.Background(), c)
	require.NoError(t, err)

	out, err := run(t, "show", entry.Path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "$.final_protocol.parts_replaced[0].name")
	assert.Contains(t, out, "Total of repairs and parts: 30.00")
}

func TestShowMissingFile(t *testing.T) {
	withHome(t)
	out, err := run(t, "show", "nope.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading contents of")
	assert.Contains(t, out, "Error:")
}

func TestNewRejectsBadInput(t *testing.T) {
	withHome(t)

	_, err := run(t, "new", "--name", "x", "--price", "abc")
	assert.ErrorContains(t, err, "invalid price")

	_, err = run(t, "new", "--name", "x", "--date", "tomorrow")
	assert.ErrorContains(t, err, "invalid date")

	_, err = run(t, "new", "--name", "x", "--days", "-1")
	assert.ErrorContains(t, err, "must not be negative")
}

func TestArchiveFlag(t *testing.T) {
	home := withHome(t)
	out, err := run(t, "--archive", "elsewhere", "new", "--name", "x", "--date", "2024-01-01T00:00:00")
	require.NoError(t, err, out)
	assert.FileExists(t, filepath.Join(home, "elsewhere", "2024-01-01_00-00-00.repair-contract.toml"))
}

func TestConfigInitAndShow(t *testing.T) {
	home := withHome(t)

	out, err := run(t, "config", "init")
	require.NoError(t, err, out)
	assert.FileExists(t, paths.ConfigFile(home))

	_, err = run(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--force")
	assert.NoError(t, err)

	t.Setenv("ARCHIWUM_THEME", "dark")
	out, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "watch_debounce: 250ms")
	assert.Contains(t, out, "theme: dark")
}

func TestInvalidConfigAbortsStartup(t *testing.T) {
	home := withHome(t)
	require.NoError(t, os.WriteFile(paths.ConfigFile(home), []byte("logging:\n  level: loud\n"), 0644))

	_, err := run(t, "list")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestBuildContract(t *testing.T) {
	c, err := buildContract(newFlags{name: "Acme", taxNumber: "PL1", price: " 12.5 ", damages: []string{"scratch"}})
	require.NoError(t, err)
	assert.True(t, c.Info.Customer.IsCompany())
	assert.True(t, decimal.RequireFromString("12.5").Equal(c.Info.PrognosisPrice))
	assert.Equal(t, []string{"scratch"}, c.Info.VisibleDamages)
	assert.Empty(t, c.Info.Description)
	assert.NotNil(t, c.Info.Description)
}
