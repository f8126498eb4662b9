package style

import (
	"slices"
	"strings"

	"github.com/muesli/termenv"
)

// Palette holds the color of each semantic role. Values are ANSI color
// numbers (0-255) or "bold".
type Palette struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
}

// BaseThemeNames lists theme bases; the -dark/-light variant is picked from
// the terminal background.
var BaseThemeNames = []string{"default", "neon", "mono"}

// Themes contains the built-in palettes. Dark variants use bright colors,
// light variants use dark ones.
var Themes = map[string]Palette{
	"default-dark": {
		Success: "10",
		Warning: "11",
		Error:   "9",
		Info:    "14",
		Muted:   "245",
		Header:  "bold",
	},
	"default-light": {
		Success: "28",
		Warning: "130",
		Error:   "124",
		Info:    "27",
		Muted:   "242",
		Header:  "bold",
	},
	"neon-dark": {
		Success: "48",
		Warning: "226",
		Error:   "197",
		Info:    "51",
		Muted:   "99",
		Header:  "201",
	},
	"neon-light": {
		Success: "29",
		Warning: "136",
		Error:   "161",
		Info:    "31",
		Muted:   "97",
		Header:  "127",
	},
	"mono-dark": {
		Success: "255",
		Warning: "252",
		Error:   "bold",
		Info:    "250",
		Muted:   "243",
		Header:  "bold",
	},
	"mono-light": {
		Success: "232",
		Warning: "236",
		Error:   "bold",
		Info:    "238",
		Muted:   "245",
		Header:  "bold",
	},
}

// ThemeNames returns every theme variant, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// overrideKeys maps config keys to palette roles.
var overrideKeys = map[string]func(*Palette, string){
	"color_success": func(p *Palette, v string) { p.Success = v },
	"color_warning": func(p *Palette, v string) { p.Warning = v },
	"color_error":   func(p *Palette, v string) { p.Error = v },
	"color_info":    func(p *Palette, v string) { p.Info = v },
	"color_muted":   func(p *Palette, v string) { p.Muted = v },
	"color_header":  func(p *Palette, v string) { p.Header = v },
}

// ResolveThemeName appends -dark or -light to a base name using the
// terminal background. Names that already carry a variant pass through.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}
	if termenv.HasDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadPalette picks the theme named by cfg["theme"] (default-dark when
// unknown) and applies the color_* overrides.
func LoadPalette(cfg map[string]string) Palette {
	name := cfg["theme"]
	if name == "" {
		name = "default"
	}

	palette, ok := Themes[ResolveThemeName(name)]
	if !ok {
		palette = Themes["default-dark"]
	}

	for key, set := range overrideKeys {
		if v := cfg[key]; v != "" {
			set(&palette, v)
		}
	}
	return palette
}
