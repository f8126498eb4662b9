package history

import (
	"strconv"
	"time"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/format"
)

type Deps struct {
	List   func(domain.HistoryFilter) ([]domain.HistoryEntry, error)
	Prune  func(time.Time) (int64, error)
	Format format.Formatter
	Styler domain.Styler
	// KeepDays is the retention used when prune is given no --days.
	KeepDays func() int
	Now      func() time.Time
}

// DepsFrom wires the handlers to a history store and configuration.
func DepsFrom(h domain.HistoryStore, cfg domain.ConfigProvider, st domain.Styler) Deps {
	return Deps{
		List:   h.List,
		Prune:  h.Prune,
		Format: format.FromConfig(cfg.Get),
		Styler: st,
		KeepDays: func() int {
			v, _ := cfg.Get("history_keep_days")
			days, err := strconv.Atoi(v)
			if err != nil || days < 0 {
				return 30
			}
			return days
		},
		Now: time.Now,
	}
}
