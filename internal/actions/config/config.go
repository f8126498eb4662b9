// Package config holds the handlers of the config commands.
package config

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/usage"
)

func Get(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		return get(ctx.String("key", ""), deps)
	}
}

func get(key string, deps Deps) (any, error) {
	if key == "" {
		return nil, usage.MissingArgument("key")
	}

	value, found := deps.Get(key)
	if !found {
		return nil, usage.InvalidConfigKey(key)
	}

	return value, nil
}

func Set(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		return set(ctx.String("key", ""), ctx.String("value", ""), deps)
	}
}

func set(key, value string, deps Deps) (any, error) {
	if key == "" {
		return nil, usage.MissingArgument("key")
	}

	if err := deps.Set(key, value); err != nil {
		return nil, err
	}
	return fmt.Sprintf("set %s=%s", key, value), nil
}

func Unset(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		return unset(ctx.String("key", ""), deps)
	}
}

func unset(key string, deps Deps) (any, error) {
	if key == "" {
		return nil, usage.MissingArgument("key")
	}
	if err := deps.Unset(key); err != nil {
		return nil, err
	}
	return "unset " + key, nil
}

func List(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		return list(ctx.Bool("all"), deps)
	}
}

// list renders visible keys grouped by section. Keys marked HideIfEmpty
// are skipped when unset unless all is true.
func list(all bool, deps Deps) (any, error) {
	values, err := deps.GetAll()
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, section := range domain.ConfigSections() {
		var lines []string
		for _, key := range domain.VisibleConfigKeys() {
			if key.Section != section {
				continue
			}
			value, exists := values[key.Name]
			if key.HideIfEmpty && value == "" && !all {
				continue
			}
			if !exists && !all {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s=%s", key.Name, value))
		}
		if len(lines) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", section)
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
