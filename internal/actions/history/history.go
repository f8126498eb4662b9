// Package history holds the handlers of the history commands.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/format"
)

// ListOptions mirrors the flags of the history command.
type ListOptions struct {
	Limit  int
	Actor  string
	Failed bool
	Since  time.Duration
	Mine   bool
}

func List(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		opts := ListOptions{
			Limit:  ctx.Int("limit", 20),
			Actor:  ctx.String("actor", ""),
			Failed: ctx.Bool("failed"),
			Since:  ctx.Duration("since", 0),
			Mine:   ctx.Bool("mine"),
		}
		if opts.Mine {
			opts.Actor = ctx.ActorName()
		}
		return list(opts, deps)
	}
}

func list(opts ListOptions, deps Deps) (any, error) {
	filter := domain.HistoryFilter{Actor: opts.Actor, Limit: opts.Limit}
	if opts.Failed {
		filter.Outcome = domain.OutcomeFailed
	}
	if opts.Since > 0 {
		filter.Since = deps.Now().Add(-opts.Since)
	}

	entries, err := deps.List(filter)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if len(entries) == 0 {
		return "no history", nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatEntry(e, deps))
	}
	return strings.Join(lines, "\n"), nil
}

func formatEntry(e domain.HistoryEntry, deps Deps) string {
	st := deps.Styler
	outcome := string(e.Outcome)
	switch e.Outcome {
	case domain.OutcomeOK:
		outcome = st.Success(outcome)
	case domain.OutcomeFailed:
		outcome = st.Error(outcome)
		if e.ErrorKind != "" {
			outcome += st.Muted(" (" + e.ErrorKind + ")")
		}
	case domain.OutcomeCancelled:
		outcome = st.Warning(outcome)
	}
	return fmt.Sprintf("%s  %-10s %s  %s %s",
		st.Muted(deps.Format.Full(e.CreatedAt)),
		e.Actor,
		e.Input,
		outcome,
		st.Muted(format.Duration(e.Duration)),
	)
}

func Prune(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		return prune(ctx.Int("days", deps.KeepDays()), deps)
	}
}

func prune(days int, deps Deps) (any, error) {
	cutoff := deps.Now().AddDate(0, 0, -days)
	n, err := deps.Prune(cutoff)
	if err != nil {
		return nil, fmt.Errorf("history prune: %w", err)
	}
	return fmt.Sprintf("pruned %d entries older than %d days", n, days), nil
}
