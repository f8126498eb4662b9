package app

import (
	"errors"
	"strings"
	"time"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/log"
	"github.com/footprint-tools/verb/internal/usage"
)

// Runner dispatches through an engine and records every attempt in the
// history store. It satisfies the console and HTTP dispatcher interfaces.
type Runner struct {
	engine  *dispatchers.Engine
	history domain.HistoryStore
	logger  domain.Logger
	now     func() time.Time
}

// NewRunner records into history; a nil history disables recording.
func NewRunner(engine *dispatchers.Engine, history domain.HistoryStore, logger domain.Logger) *Runner {
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Runner{engine: engine, history: history, logger: logger, now: time.Now}
}

func (r *Runner) Dispatch(actor dispatchers.Actor, input string) (any, error) {
	start := r.now()

	var (
		result  any
		command string
	)
	res, err := r.engine.Resolve(actor, input)
	if err == nil {
		command = res.Command.Name()
		result, err = r.engine.Execute(res)
	}

	r.record(actor, input, command, r.now().Sub(start), err)
	return result, err
}

func (r *Runner) Suggest(actor dispatchers.Actor, input string) []string {
	return r.engine.Suggest(actor, input)
}

// record never fails the dispatch; store errors are logged.
func (r *Runner) record(actor dispatchers.Actor, input, command string, took time.Duration, err error) {
	if r.history == nil || strings.TrimSpace(input) == "" {
		return
	}

	entry := domain.HistoryEntry{
		Input:    input,
		Command:  command,
		Outcome:  domain.OutcomeOK,
		Duration: took,
	}
	if actor != nil {
		entry.Actor = actor.Name()
	}

	if err != nil {
		entry.Outcome, entry.ErrorKind = classify(err)
	}

	if _, rerr := r.history.Record(entry); rerr != nil {
		r.logger.Warn("history: could not record %q: %v", input, rerr)
	}
}

func classify(err error) (domain.Outcome, string) {
	if errors.Is(err, dispatchers.ErrCancelled) {
		return domain.OutcomeCancelled, ""
	}
	var uerr *usage.Error
	if errors.As(err, &uerr) {
		return domain.OutcomeFailed, uerr.Kind.String()
	}
	return domain.OutcomeFailed, "error"
}
