package history

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/format"
	"github.com/footprint-tools/verb/internal/testutil"
	"github.com/footprint-tools/verb/internal/ui/style"
)

var now = time.Date(2024, 1, 23, 15, 4, 5, 0, time.UTC)

func storeDeps(t *testing.T) (Deps, *testStore) {
	t.Helper()
	s := testutil.NewTestStore(t)
	ts := &testStore{HistoryStore: s}
	return Deps{
		List:     ts.List,
		Prune:    ts.Prune,
		Format:   format.New("yyyy-mm-dd", "24h"),
		Styler:   style.NopStyler{},
		KeepDays: func() int { return 30 },
		Now:      func() time.Time { return now },
	}, ts
}

type testStore struct {
	domain.HistoryStore
	lastFilter domain.HistoryFilter
}

func (s *testStore) List(f domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	s.lastFilter = f
	return s.HistoryStore.List(f)
}

func TestList_Empty(t *testing.T) {
	deps, _ := storeDeps(t)

	out, err := list(ListOptions{Limit: 20}, deps)

	require.NoError(t, err)
	require.Equal(t, "no history", out)
}

func TestList_FormatsNewestFirst(t *testing.T) {
	deps, ts := storeDeps(t)
	testutil.SeedHistory(t, ts.HistoryStore, now,
		domain.HistoryEntry{Actor: "steve", Input: "echo hi", Outcome: domain.OutcomeOK, Duration: 2 * time.Millisecond},
		domain.HistoryEntry{Actor: "alex", Input: "ehco", Outcome: domain.OutcomeFailed, ErrorKind: "unknown_command"},
	)

	out, err := list(ListOptions{Limit: 20}, deps)

	require.NoError(t, err)
	lines := strings.Split(out.(string), "\n")
	require.Len(t, lines, 2)
	local := now.Local()
	require.Equal(t, deps.Format.Full(local)+"  alex       ehco  failed (unknown_command) 0µs", lines[0])
	require.Equal(t, deps.Format.Full(local.Add(-time.Minute))+"  steve      echo hi  ok 2ms", lines[1])
}

func TestList_Filters(t *testing.T) {
	deps, ts := storeDeps(t)

	_, err := list(ListOptions{Limit: 5, Actor: "steve", Failed: true, Since: time.Hour}, deps)

	require.NoError(t, err)
	require.Equal(t, domain.HistoryFilter{
		Actor:   "steve",
		Outcome: domain.OutcomeFailed,
		Since:   now.Add(-time.Hour),
		Limit:   5,
	}, ts.lastFilter)
}

func TestList_Error(t *testing.T) {
	deps := Deps{
		List: func(domain.HistoryFilter) ([]domain.HistoryEntry, error) { return nil, errors.New("locked") },
		Now:  func() time.Time { return now },
	}

	_, err := list(ListOptions{}, deps)

	require.ErrorContains(t, err, "locked")
}

func TestPrune(t *testing.T) {
	deps, ts := storeDeps(t)
	testutil.SeedHistory(t, ts.HistoryStore, now.AddDate(0, 0, -40),
		domain.HistoryEntry{Actor: "steve", Input: "old"},
	)
	testutil.SeedHistory(t, ts.HistoryStore, now,
		domain.HistoryEntry{Actor: "steve", Input: "new"},
	)

	out, err := prune(30, deps)

	require.NoError(t, err)
	require.Equal(t, "pruned 1 entries older than 30 days", out)

	left, err := ts.List(domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, "new", left[0].Input)
}
