package theme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/ui/style"
)

func Set(deps Deps) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		return setTheme(ctx.String("name", ""), deps)
	}
}

func setTheme(name string, deps Deps) (any, error) {
	if !slices.Contains(deps.ThemeNames, name) && !slices.Contains(style.BaseThemeNames, name) {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(deps.ThemeNames, ", "))
	}

	if err := deps.Set("theme", name); err != nil {
		return nil, err
	}

	return "theme set to " + name, nil
}

// Choices lists every name accepted by theme set.
func Choices() []string {
	return append(slices.Clone(style.BaseThemeNames), style.ThemeNames()...)
}
