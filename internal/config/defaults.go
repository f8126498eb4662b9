package config

import (
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/paths"
)

// dynamicDefaults covers keys whose default depends on the platform.
var dynamicDefaults = map[string]func() string{
	"db_path":      paths.DatabasePath,
	"aliases_path": paths.AliasesFilePath,
}

// DefaultValue returns the built-in default for key, or "" if it has none.
func DefaultValue(key string) string {
	if fn, ok := dynamicDefaults[key]; ok {
		return fn()
	}
	def, _ := domain.GetDefaultValue(key)
	return def
}

// Defaults returns the default of every known key.
func Defaults() map[string]string {
	out := make(map[string]string, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		out[key.Name] = DefaultValue(key.Name)
	}
	return out
}

// Get returns key from the default config file, falling back to the
// built-in default. The bool is false for unknown keys.
func Get(key string) (string, bool) {
	f, err := DefaultFile()
	if err != nil {
		return defaultFor(key)
	}
	return NewProvider(f, nil).Get(key)
}

// GetAll returns the default config file merged over the built-in defaults.
func GetAll() (map[string]string, error) {
	f, err := DefaultFile()
	if err != nil {
		return Defaults(), nil
	}
	return NewProvider(f, nil).GetAll()
}

func defaultFor(key string) (string, bool) {
	if !domain.IsValidConfigKey(key) {
		return "", false
	}
	return DefaultValue(key), true
}
