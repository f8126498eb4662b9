package cli

import "github.com/footprint-tools/verb/internal/params"

var (
	HistoryFlags = []params.Spec{
		{
			Name:        "limit",
			Short:       "n",
			Kind:        params.KindInt,
			Flag:        true,
			Default:     "20",
			Range:       &params.Bounds{Min: 1, Max: 1000},
			Description: "Maximum number of entries",
		},
		{
			Name:        "actor",
			Short:       "a",
			Kind:        params.KindWord,
			Flag:        true,
			Description: "Only entries dispatched by this actor",
		},
		{
			Name:        "since",
			Short:       "s",
			Kind:        params.KindDuration,
			Flag:        true,
			Description: "Only entries newer than this (e.g. 90m, 24h)",
		},
		{
			Name:        "failed",
			Short:       "f",
			Kind:        params.KindBool,
			Switch:      true,
			Description: "Only failed dispatches",
		},
		{
			Name:        "mine",
			Short:       "m",
			Kind:        params.KindBool,
			Switch:      true,
			Description: "Only your own dispatches",
		},
	}

	PruneFlags = []params.Spec{
		{
			Name:        "days",
			Short:       "d",
			Kind:        params.KindInt,
			Flag:        true,
			Range:       &params.Bounds{Min: 0, Max: 3650},
			Description: "Keep entries newer than this many days (default: history_keep_days)",
		},
	}

	ConfigListFlags = []params.Spec{
		{
			Name:        "all",
			Short:       "a",
			Kind:        params.KindBool,
			Switch:      true,
			Description: "Include keys with empty values",
		},
	}

	AliasAddFlags = []params.Spec{
		{
			Name:        "description",
			Short:       "d",
			Kind:        params.KindString,
			Flag:        true,
			Description: "Text shown in help",
		},
	}
)
