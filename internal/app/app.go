// Package app wires configuration, logging, storage and the engine into a
// ready-to-run application.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/footprint-tools/verb/internal/aliases"
	"github.com/footprint-tools/verb/internal/config"
	"github.com/footprint-tools/verb/internal/cooldown"
	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/log"
	"github.com/footprint-tools/verb/internal/paths"
	"github.com/footprint-tools/verb/internal/store"
	"github.com/footprint-tools/verb/internal/ui"
	"github.com/footprint-tools/verb/internal/ui/style"
)

// Application holds the wired components.
type Application struct {
	Engine      *dispatchers.Engine
	Runner      *Runner
	Config      *config.Provider
	Logger      *log.Logger
	History     *store.Store
	Aliases     *aliases.Manager
	Cooldown    *cooldown.Limiter
	Permissions *Permissions
	Output      *ui.Writer
	Styler      domain.Styler
}

// Options configures the application factory.
type Options struct {
	// ConfigPath overrides the config file location.
	ConfigPath string
	// Overrides take precedence over the config file (env, flags).
	Overrides map[string]string

	StyleEnabled bool
	Out          io.Writer
}

// DefaultOptions returns options writing to stdout with styling on.
func DefaultOptions() Options {
	return Options{
		StyleEnabled: true,
		Out:          os.Stdout,
	}
}

// New creates an Application with all dependencies wired up. Commands are
// not registered here.
func New(opts Options) (*Application, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	file, err := configFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg := config.NewProvider(file, opts.Overrides)

	values, err := cfg.GetAll()
	if err != nil {
		// Fall back to defaults; the file can still be fixed with config set.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	logger := newLogger(values)
	log.SetDefault(logger)

	perms := NewPermissions(values["admins"])
	hooks := dispatchers.NewHooks()

	engineCfg := dispatchers.DefaultConfig()
	engineCfg.CaseSensitive = values["case_sensitive"] == "true"

	engine := dispatchers.New(
		dispatchers.WithConfig(engineCfg),
		dispatchers.WithPermissions(perms),
		dispatchers.WithLogger(logger.Named("dispatch")),
		dispatchers.WithHooks(hooks),
	)

	var limiter *cooldown.Limiter
	if perSec, _ := strconv.ParseFloat(values["cooldown_per_sec"], 64); perSec > 0 {
		limiter = cooldown.New(perSec, max(1, int(perSec)))
		limiter.Exempt(perms.Admins()...)
		limiter.Install(hooks)
	}

	history, err := store.New(values["db_path"])
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}

	a := &Application{
		Engine:      engine,
		Runner:      NewRunner(engine, history, logger.Named("history")),
		Config:      cfg,
		Logger:      logger,
		History:     history,
		Aliases:     aliases.NewManager(engine, values["aliases_path"]),
		Cooldown:    limiter,
		Permissions: perms,
		Output:      ui.NewWriterTo(opts.Out),
		Styler:      style.New(opts.Out, opts.StyleEnabled, values),
	}
	logger.Debug("app: started (config %s, history %s)", file.Path, history.Path())
	return a, nil
}

func configFile(path string) (*config.File, error) {
	if path != "" {
		paths.SetConfigFile(path)
	}
	return config.DefaultFile()
}

// newLogger opens the log file, or returns a disabled logger when logging
// is off or the file cannot be opened.
func newLogger(values map[string]string) *log.Logger {
	if values["enable_log"] == "true" {
		l, err := log.New(paths.LogFilePath(), log.ParseLevel(values["log_level"]))
		if err == nil {
			return l
		}
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	l := log.NewWriter(io.Discard, log.LevelError)
	l.SetEnabled(false)
	return l
}

// Actor returns the configured local actor.
func (a *Application) Actor() dispatchers.Actor {
	name, _ := a.Config.Get("actor")
	if name == "" {
		name = "console"
	}
	return dispatchers.NamedActor(name)
}

// KeepDays returns the history retention in days.
func (a *Application) KeepDays() int {
	v, _ := a.Config.Get("history_keep_days")
	days, err := strconv.Atoi(v)
	if err != nil || days < 0 {
		return 30
	}
	return days
}

// Maintain prunes old history and idle cooldown buckets every interval
// until ctx is done. Long-running modes call it in a goroutine.
func (a *Application) Maintain(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.maintain()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.maintain()
		}
	}
}

func (a *Application) maintain() {
	if days := a.KeepDays(); days > 0 {
		n, err := a.History.Prune(time.Now().AddDate(0, 0, -days))
		if err != nil {
			a.Logger.Warn("maintain: prune history: %v", err)
		} else if n > 0 {
			a.Logger.Info("maintain: pruned %d history entries", n)
		}
	}
	if a.Cooldown != nil {
		if n := a.Cooldown.Sweep(time.Hour); n > 0 {
			a.Logger.Debug("maintain: dropped %d idle cooldown buckets", n)
		}
	}
}

// Close releases the store and the log file.
func (a *Application) Close() error {
	if a.History != nil {
		_ = a.History.Close()
	}
	if a.Logger != nil {
		_ = a.Logger.Close()
	}
	return nil
}
