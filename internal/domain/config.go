package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in `verb config list`
	Hidden      bool   // Hidden keys are not shown in help or config list
	HideIfEmpty bool   // Only show in config list if explicitly set
}

// ConfigKeys defines all available configuration keys.
// Order determines display order in `verb config list`.
var ConfigKeys = []ConfigKey{
	// Dispatch
	{
		Name:        "actor",
		Default:     "console",
		Description: "Actor name used for local dispatches",
		Section:     "Dispatch",
	},
	{
		Name:        "admins",
		Default:     "console",
		Description: "Comma-separated actors granted every permission",
		Section:     "Dispatch",
	},
	{
		Name:        "case_sensitive",
		Default:     "false",
		Description: "Match command literals case-sensitively (true/false)",
		Section:     "Dispatch",
	},
	{
		Name:        "cooldown_per_sec",
		Default:     "0",
		Description: "Executions allowed per second for each actor (0 disables)",
		Section:     "Dispatch",
	},
	{
		Name:        "aliases_path",
		Default:     "", // Set dynamically to paths.AliasesFilePath()
		Description: "Path to the user aliases file",
		Section:     "Dispatch",
	},
	// Storage
	{
		Name:        "db_path",
		Default:     "", // Set dynamically to paths.DatabasePath()
		Description: "Path to the history database",
		Section:     "Storage",
	},
	{
		Name:        "history_keep_days",
		Default:     "30",
		Description: "Days of dispatch history to keep",
		Section:     "Storage",
	},
	// Server
	{
		Name:        "http_addr",
		Default:     "127.0.0.1:7070",
		Description: "Listen address for `verb --serve`",
		Section:     "Server",
	},
	{
		Name:        "http_actor",
		Default:     "anonymous",
		Description: "Actor that HTTP requests dispatch as",
		Section:     "Server",
	},
	{
		Name:        "http_trust_actor_header",
		Default:     "false",
		Description: "Let HTTP clients choose their actor with X-Verb-Actor",
		Section:     "Server",
	},
	// Display
	{
		Name:        "theme",
		Default:     "default",
		Description: "Color theme: default, neon, mono",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Default:     "yyyy-mm-dd",
		Description: "Date format: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd or a Go layout",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format: 12h or 24h",
		Section:     "Display",
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "warn",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
	// Color overrides (ANSI 0-255)
	{
		Name:        "color_success",
		Description: "Override success color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_warning",
		Description: "Override warning color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_error",
		Description: "Override error color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_info",
		Description: "Override info color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_muted",
		Description: "Override muted text color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_header",
		Description: "Override header style from current theme (ANSI 0-255 or 'bold')",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
}

var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// GetConfigKey returns the ConfigKey for a given name.
func GetConfigKey(name string) (ConfigKey, bool) {
	key, ok := configKeyMap[name]
	return key, ok
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// GetDefaultValue returns the default value for a config key.
func GetDefaultValue(name string) (string, bool) {
	if key, ok := configKeyMap[name]; ok {
		return key.Default, true
	}
	return "", false
}

// ConfigKeyNames returns every key name in display order.
func ConfigKeyNames() []string {
	names := make([]string, 0, len(ConfigKeys))
	for _, key := range ConfigKeys {
		names = append(names, key.Name)
	}
	return names
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Dispatch", "Storage", "Server", "Display", "Logging", "Color Overrides"}
}
