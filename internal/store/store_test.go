package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/store"
	"github.com/footprint-tools/verb/internal/testutil"
)

var base = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func TestStore_Record(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.Record(domain.HistoryEntry{
		Actor:    "steve",
		Input:    "tp here",
		Command:  "tp here",
		Duration: 1500 * time.Microsecond,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(got.ID)
	require.NoError(t, err, "id should be a uuid")
	require.Equal(t, domain.OutcomeOK, got.Outcome)
	require.False(t, got.CreatedAt.IsZero())

	list, err := s.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, got.ID, list[0].ID)
	require.Equal(t, "tp here", list[0].Input)
	require.Equal(t, 1500*time.Microsecond, list[0].Duration)
	require.True(t, got.CreatedAt.Equal(list[0].CreatedAt))
}

func TestStore_Record_DuplicateID(t *testing.T) {
	s := testutil.NewTestStore(t)

	e, err := s.Record(domain.HistoryEntry{Actor: "a", Input: "x"})
	require.NoError(t, err)

	_, err = s.Record(domain.HistoryEntry{ID: e.ID, Actor: "a", Input: "y"})
	require.Error(t, err)
}

func TestStore_List_Filters(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.SeedHistory(t, s, base,
		domain.HistoryEntry{Actor: "steve", Input: "echo hi", Command: "echo"},
		domain.HistoryEntry{Actor: "alex", Input: "sum x", Outcome: domain.OutcomeFailed, ErrorKind: "invalid_integer"},
		domain.HistoryEntry{Actor: "steve", Input: "tp alex", Command: "tp", Outcome: domain.OutcomeCancelled},
		domain.HistoryEntry{Actor: "steve", Input: "whoami", Command: "whoami"},
	)

	tests := []struct {
		name   string
		filter domain.HistoryFilter
		inputs []string
	}{
		{"all newest first", domain.HistoryFilter{}, []string{"whoami", "tp alex", "sum x", "echo hi"}},
		{"by actor", domain.HistoryFilter{Actor: "alex"}, []string{"sum x"}},
		{"by outcome", domain.HistoryFilter{Outcome: domain.OutcomeCancelled}, []string{"tp alex"}},
		{"since", domain.HistoryFilter{Since: base.Add(-time.Minute)}, []string{"whoami", "tp alex"}},
		{"limit", domain.HistoryFilter{Actor: "steve", Limit: 2}, []string{"whoami", "tp alex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := s.List(tt.filter)
			require.NoError(t, err)

			var inputs []string
			for _, e := range list {
				inputs = append(inputs, e.Input)
			}
			require.Equal(t, tt.inputs, inputs)
		})
	}
}

func TestStore_Prune(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.SeedHistory(t, s, base,
		domain.HistoryEntry{Actor: "a", Input: "1"},
		domain.HistoryEntry{Actor: "a", Input: "2"},
		domain.HistoryEntry{Actor: "a", Input: "3"},
	)

	n, err := s.Prune(base.Add(-90 * time.Second))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	count, err := s.Count()
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "history.db")

	s, err := store.New(path)
	require.NoError(t, err)
	_, err = s.Record(domain.HistoryEntry{Actor: "a", Input: "echo"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.New(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	count, err := s.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, path, s.Path())
}

func TestNew_Memory(t *testing.T) {
	s, err := store.New(":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Record(domain.HistoryEntry{Actor: "a", Input: "echo"})
	require.NoError(t, err)
	count, err := s.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
