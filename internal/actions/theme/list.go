// Package theme holds the handlers of the theme commands.
package theme

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/ui/style"
)

func List(deps Deps) dispatchers.Handler {
	return func(*dispatchers.Context) (any, error) {
		return list(deps), nil
	}
}

func list(deps Deps) string {
	current, _ := deps.Get("theme")
	if current == "" {
		current = "default"
	}
	current = style.ResolveThemeName(current)

	var b strings.Builder
	b.WriteString("Available themes (* = current)\n\n")

	for _, name := range deps.ThemeNames {
		marker := "  "
		if name == current {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%-14s  %s\n", marker, name, renderColorPreview(deps.Preview(name)))
	}

	b.WriteString("\nUse 'theme set <name>' to change")
	return b.String()
}

// renderColorPreview returns a sample of every role in the theme.
func renderColorPreview(st domain.Styler) string {
	return strings.Join([]string{
		st.Success("success"),
		st.Warning("warning"),
		st.Error("error"),
		st.Info("info"),
		st.Muted("muted"),
		st.Header("header"),
	}, " ")
}
