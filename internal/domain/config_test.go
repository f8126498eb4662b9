package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigKeys_SectionsAreKnown(t *testing.T) {
	sections := map[string]bool{}
	for _, s := range ConfigSections() {
		sections[s] = true
	}
	for _, key := range ConfigKeys {
		require.True(t, sections[key.Section], "key %s has unknown section %q", key.Name, key.Section)
	}
}

func TestConfigKeys_Lookup(t *testing.T) {
	require.True(t, IsValidConfigKey("actor"))
	require.False(t, IsValidConfigKey("nope"))

	def, ok := GetDefaultValue("log_level")
	require.True(t, ok)
	require.Equal(t, "warn", def)

	names := ConfigKeyNames()
	require.Equal(t, len(ConfigKeys), len(names))
	require.Equal(t, "actor", names[0])
}
