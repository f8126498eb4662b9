// Package cli declares the built-in command set.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/footprint-tools/verb/internal/actions"
	aliasactions "github.com/footprint-tools/verb/internal/actions/alias"
	configactions "github.com/footprint-tools/verb/internal/actions/config"
	historyactions "github.com/footprint-tools/verb/internal/actions/history"
	"github.com/footprint-tools/verb/internal/actions/theme"
	"github.com/footprint-tools/verb/internal/app"
	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
)

// AdminPermission gates maintenance commands.
const AdminPermission = "verb.admin"

// BuildCommands returns the built-in commands bound to a.
func BuildCommands(a *app.Application) []*dispatchers.Command {
	cfgDeps := configactions.DepsFrom(a.Config)
	themeDeps := theme.DepsFrom(a.Config, a.Output, a.Styler.Enabled())
	historyDeps := historyactions.DepsFrom(a.History, a.Config, a.Styler)
	aliasDeps := aliasactions.DepsFrom(a.Aliases)

	return []*dispatchers.Command{
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "help [topic...]",
			Summary:  "Show available commands",
			Category: dispatchers.CategoryBasics,
			Handler: func(ctx *dispatchers.Context) (any, error) {
				return a.Engine.Help(ctx.Actor(), strings.Fields(ctx.String("topic", "")), a.Styler)
			},
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "version",
			Summary:  "Show verb version",
			Category: dispatchers.CategoryBasics,
			Handler:  actions.ShowVersion,
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "echo <message...>",
			Summary:  "Print the message back",
			Category: dispatchers.CategoryBasics,
			Handler:  actions.Echo,
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "sum <values:list:int>",
			Summary:  "Add up integers",
			Category: dispatchers.CategoryBasics,
			Handler:  actions.Sum,
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "whoami",
			Summary:  "Show who is dispatching",
			Category: dispatchers.CategoryBasics,
			Handler:  actions.Whoami,
		}),

		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "teleport|tp here",
			Summary:  "Teleport yourself to spawn",
			Category: dispatchers.CategoryWorld,
			Handler:  actions.TeleportHere,
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("teleport", "tp"),
				dispatchers.Arg(PlayerArg(recentActors(a.History))),
			},
			Summary:  "Teleport to another player",
			Category: dispatchers.CategoryWorld,
			Handler:  actions.TeleportTo,
		}),

		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("config"), dispatchers.Lit("get"), dispatchers.Arg(ConfigKeyArg),
			},
			Summary:  "Get a config value",
			Category: dispatchers.CategoryConfig,
			Handler:  configactions.Get(cfgDeps),
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("config"), dispatchers.Lit("set"),
				dispatchers.Arg(ConfigKeyArg), dispatchers.Arg(ConfigValueArg),
			},
			Summary:  "Set a config value",
			Category: dispatchers.CategoryConfig,
			Handler:  configactions.Set(cfgDeps),
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("config"), dispatchers.Lit("unset"), dispatchers.Arg(ConfigKeyArg),
			},
			Summary:  "Remove a config value",
			Category: dispatchers.CategoryConfig,
			Handler:  configactions.Unset(cfgDeps),
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "config list",
			Flags:    ConfigListFlags,
			Summary:  "List config values",
			Category: dispatchers.CategoryConfig,
			Handler:  configactions.List(cfgDeps),
		}),

		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "theme list",
			Summary:  "List available themes",
			Category: dispatchers.CategoryConfig,
			Handler:  theme.List(themeDeps),
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("theme"), dispatchers.Lit("set"), dispatchers.Arg(ThemeNameArg),
			},
			Summary:  "Set the color theme",
			Category: dispatchers.CategoryConfig,
			Handler:  theme.Set(themeDeps),
		}),

		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "alias list",
			Summary:  "List aliases",
			Category: dispatchers.CategoryConfig,
			Handler:  aliasactions.List(aliasDeps),
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "alias add <name:word> <run...>",
			Flags:    AliasAddFlags,
			Summary:  "Define an alias for a command line",
			Category: dispatchers.CategoryConfig,
			Handler:  aliasactions.Add(aliasDeps),
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("alias"), dispatchers.Lit("remove", "rm"),
				dispatchers.Arg(AliasNameArg(a.Aliases.Names)),
			},
			Summary:  "Remove an alias",
			Category: dispatchers.CategoryConfig,
			Handler:  aliasactions.Remove(aliasDeps),
		}),

		dispatchers.MustCommand(dispatchers.CommandSpec{
			Template: "history",
			Flags:    HistoryFlags,
			Summary:  "Show recent dispatches",
			Category: dispatchers.CategoryHistory,
			Handler:  historyactions.List(historyDeps),
		}),
		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("history"), dispatchers.Lit("prune").Require(AdminPermission),
			},
			Flags:    PruneFlags,
			Summary:  "Delete old history entries",
			Category: dispatchers.CategoryAdmin,
			Handler:  historyactions.Prune(historyDeps),
		}),

		dispatchers.MustCommand(dispatchers.CommandSpec{
			Path: []dispatchers.Segment{
				dispatchers.Lit("admin").Require(AdminPermission), dispatchers.Lit("reload"),
			},
			Summary:  "Reload aliases from disk",
			Category: dispatchers.CategoryAdmin,
			Handler:  aliasactions.Reload(aliasDeps),
		}),
	}
}

// Setup registers the built-in commands on a's engine, then loads the
// aliases so they can be checked against the built-ins.
func Setup(a *app.Application) error {
	for _, cmd := range BuildCommands(a) {
		cancelled, err := a.Engine.Register(cmd)
		if err != nil {
			return fmt.Errorf("register %s: %w", cmd.Usage(), err)
		}
		if cancelled {
			a.Logger.Warn("cli: registration of %s was cancelled", cmd.Usage())
		}
	}
	if err := a.Aliases.Load(); err != nil {
		return fmt.Errorf("load aliases: %w", err)
	}
	return nil
}

const recentActorsWindow = 200

func recentActors(h domain.HistoryStore) func() []string {
	return func() []string {
		entries, err := h.List(domain.HistoryFilter{Limit: recentActorsWindow})
		if err != nil {
			return nil
		}
		var names []string
		for _, e := range entries {
			if !slices.Contains(names, e.Actor) {
				names = append(names, e.Actor)
			}
		}
		slices.Sort(names)
		return names
	}
}
