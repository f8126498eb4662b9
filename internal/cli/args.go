package cli

import (
	"github.com/footprint-tools/verb/internal/actions/theme"
	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/params"
)

var (
	ConfigKeyArg = params.Spec{
		Name:        "key",
		Kind:        params.KindEnum,
		Description: "Configuration key",
		Required:    true,
		Choices:     domain.ConfigKeyNames(),
	}

	ConfigValueArg = params.Spec{
		Name:        "value",
		Kind:        params.KindString,
		Description: "Value to assign",
		Required:    true,
		Greedy:      true,
	}

	ThemeNameArg = params.Spec{
		Name:        "name",
		Kind:        params.KindEnum,
		Description: "Theme name (e.g., default-dark, neon-light)",
		Required:    true,
		Choices:     theme.Choices(),
	}

	TopicArg = params.Spec{
		Name:        "topic",
		Kind:        params.KindString,
		Description: "Command words to show help for",
		Greedy:      true,
	}
)

// PlayerArg is the target of `tp <player>`. Suggestions come from the
// actors seen in recent history.
func PlayerArg(recent func() []string) params.Spec {
	return params.Spec{
		Name:        "player",
		Kind:        params.KindWord,
		Description: "Who to teleport to",
		Required:    true,
		Suggestions: func(_ params.Context, prefix string) []string {
			return params.FilterPrefix(recent(), prefix)
		},
	}
}

// AliasNameArg names an existing alias.
func AliasNameArg(names func() []string) params.Spec {
	return params.Spec{
		Name:        "name",
		Kind:        params.KindWord,
		Description: "Alias name",
		Required:    true,
		Suggestions: func(_ params.Context, prefix string) []string {
			return params.FilterPrefix(names(), prefix)
		},
	}
}
