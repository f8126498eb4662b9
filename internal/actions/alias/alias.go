// Package alias holds the handlers of the alias commands.
package alias

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/verb/internal/aliases"
	"github.com/footprint-tools/verb/internal/dispatchers"
)

func Add(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		a := aliases.Alias{
			Name:        ctx.String("name", ""),
			Run:         ctx.String("run", ""),
			Description: ctx.String("description", ""),
		}
		return add(a, deps)
	}
}

func add(a aliases.Alias, deps Deps) (any, error) {
	if err := deps.Add(a); err != nil {
		return nil, fmt.Errorf("alias %s: %w", a.Name, err)
	}
	return fmt.Sprintf("added alias %s -> %s", a.Name, a.Run), nil
}

func Remove(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		return remove(ctx.String("name", ""), deps)
	}
}

func remove(name string, deps Deps) (any, error) {
	if err := deps.Remove(name); err != nil {
		return nil, fmt.Errorf("alias %s: %w", name, err)
	}
	return "removed alias " + name, nil
}

func List(deps Deps) dispatchers.Handler {
	return func(*dispatchers.Context) (any, error) {
		return list(deps), nil
	}
}

func list(deps Deps) string {
	all := deps.List()
	if len(all) == 0 {
		return "no aliases defined in " + deps.Path()
	}

	width := 0
	for _, a := range all {
		width = max(width, len(a.Name))
	}

	lines := make([]string, 0, len(all))
	for _, a := range all {
		line := fmt.Sprintf("%-*s  %s", width, a.Name, a.Run)
		if a.Description != "" {
			line += "  # " + a.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func Reload(deps Deps) dispatchers.Handler {
	return func(*dispatchers.Context) (any, error) {
		if err := deps.Reload(); err != nil {
			return nil, fmt.Errorf("reload aliases: %w", err)
		}
		return fmt.Sprintf("reloaded %d aliases", len(deps.List())), nil
	}
}
