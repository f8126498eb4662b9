package theme

import (
	"io"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/ui/style"
)

type Deps struct {
	Get        func(string) (string, bool)
	Set        func(string, string) error
	ThemeNames []string
	// Preview returns a styler rendering the named theme.
	Preview func(name string) domain.Styler
}

// DepsFrom wires the handlers to a configuration provider. Previews are
// colored only when color is true.
func DepsFrom(p domain.ConfigProvider, out io.Writer, color bool) Deps {
	return Deps{
		Get:        p.Get,
		Set:        p.Set,
		ThemeNames: style.ThemeNames(),
		Preview: func(name string) domain.Styler {
			return style.New(out, color, map[string]string{"theme": name})
		},
	}
}
