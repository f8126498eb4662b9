package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/paths"
)

// isolate points every app directory into a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Cleanup(func() { paths.SetConfigFile("") })
	return dir
}

func newTestApp(t *testing.T, overrides map[string]string) *Application {
	t.Helper()
	dir := isolate(t)
	a, err := New(Options{
		ConfigPath: filepath.Join(dir, "verbrc"),
		Overrides:  overrides,
		Out:        &bytes.Buffer{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	require.True(t, opts.StyleEnabled)
	require.NotNil(t, opts.Out)
}

func TestNew_WiresComponents(t *testing.T) {
	a := newTestApp(t, map[string]string{"db_path": ":memory:"})

	require.NotNil(t, a.Engine)
	require.NotNil(t, a.Runner)
	require.NotNil(t, a.Config)
	require.NotNil(t, a.Logger)
	require.NotNil(t, a.History)
	require.NotNil(t, a.Aliases)
	require.NotNil(t, a.Output)
	require.NotNil(t, a.Styler)
	require.Nil(t, a.Cooldown)
	require.Equal(t, "console", a.Actor().Name())
	require.Equal(t, 30, a.KeepDays())
}

func TestNew_Overrides(t *testing.T) {
	a := newTestApp(t, map[string]string{
		"db_path":          ":memory:",
		"actor":            "steve",
		"admins":           "steve",
		"case_sensitive":   "true",
		"cooldown_per_sec": "2",
	})

	require.Equal(t, "steve", a.Actor().Name())
	require.True(t, a.Engine.Config().CaseSensitive)
	require.NotNil(t, a.Cooldown)
	require.Equal(t, []string{"steve"}, a.Permissions.Admins())
}

func TestNew_CreatesHistoryFile(t *testing.T) {
	a := newTestApp(t, nil)

	require.FileExists(t, a.History.Path())
}

func TestMaintain_PrunesHistory(t *testing.T) {
	a := newTestApp(t, map[string]string{"db_path": ":memory:", "history_keep_days": "7"})

	_, err := a.History.Record(domain.HistoryEntry{Actor: "steve", Input: "old", CreatedAt: time.Now().AddDate(0, 0, -8)})
	require.NoError(t, err)
	_, err = a.History.Record(domain.HistoryEntry{Actor: "steve", Input: "new"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.Maintain(ctx, time.Hour)

	n, err := a.History.Count()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestClose_Idempotent(t *testing.T) {
	a := newTestApp(t, map[string]string{"db_path": ":memory:"})

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
