package dispatchers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/footprint-tools/verb/internal/params"
)

// ParseTemplate turns a textual path into segments and flags.
//
//	tp here                      literal words
//	teleport|tp                  literal with alias
//	<player>                     required string parameter
//	<count:int:1-64>             required int in [1, 64]
//	[count:int=1]                optional int defaulting to 1
//	<mode:enum:survival,creative>
//	<ids:list:int>               list of ints, consumes the rest
//	<message...>                 greedy string
//	[--limit|-l:int=10]          value flag
//	[--force|-f]                 switch
func ParseTemplate(template string) ([]Segment, []params.Spec, error) {
	var segs []Segment
	var flags []params.Spec

	for _, word := range strings.Fields(template) {
		open, closing := word[0], word[len(word)-1]
		isParam := (open == '<' && closing == '>') || (open == '[' && closing == ']')
		if !isParam {
			if strings.ContainsAny(word, "<>[]") {
				return nil, nil, fmt.Errorf("template %q: malformed segment %q", template, word)
			}
			names := strings.Split(word, "|")
			for _, n := range names {
				if n == "" {
					return nil, nil, fmt.Errorf("template %q: empty alias in %q", template, word)
				}
			}
			segs = append(segs, Lit(names[0], names[1:]...))
			continue
		}

		required := open == '<'
		inner := word[1 : len(word)-1]
		if inner == "" {
			return nil, nil, fmt.Errorf("template %q: empty parameter", template)
		}

		if strings.HasPrefix(inner, "--") {
			spec, err := parseFlag(inner, required)
			if err != nil {
				return nil, nil, fmt.Errorf("template %q: %w", template, err)
			}
			flags = append(flags, spec)
			continue
		}

		spec, err := parseParam(inner, required)
		if err != nil {
			return nil, nil, fmt.Errorf("template %q: %w", template, err)
		}
		segs = append(segs, Arg(spec))
	}

	if len(segs) == 0 {
		return nil, nil, fmt.Errorf("template %q has no path", template)
	}
	return segs, flags, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(template string) []Segment {
	segs, _, err := ParseTemplate(template)
	if err != nil {
		panic(err)
	}
	return segs
}

func parseParam(inner string, required bool) (params.Spec, error) {
	inner, def, _ := strings.Cut(inner, "=")
	spec := params.Spec{Required: required, Default: def}

	if rest, ok := strings.CutSuffix(inner, "..."); ok {
		spec.Greedy = true
		inner = rest
	}

	parts := strings.SplitN(inner, ":", 3)
	spec.Name = parts[0]
	spec.Kind = params.KindString
	if spec.Name == "" {
		return spec, fmt.Errorf("parameter %q has no name", inner)
	}
	if len(parts) > 1 && parts[1] != "" {
		spec.Kind = params.Kind(parts[1])
	}
	if spec.Greedy && spec.Kind != params.KindString {
		return spec, fmt.Errorf("greedy parameter %q must be a string", spec.Name)
	}
	if len(parts) == 3 {
		if err := applyExtra(&spec, parts[2]); err != nil {
			return spec, err
		}
	}
	if spec.Kind == params.KindEnum && len(spec.Choices) == 0 {
		return spec, fmt.Errorf("enum parameter %q declares no choices", spec.Name)
	}
	return spec, nil
}

func parseFlag(inner string, required bool) (params.Spec, error) {
	inner, def, _ := strings.Cut(inner, "=")
	parts := strings.SplitN(inner, ":", 3)

	long, short, _ := strings.Cut(parts[0], "|")
	spec := params.Spec{
		Name:     strings.TrimPrefix(long, "--"),
		Short:    strings.TrimPrefix(short, "-"),
		Required: required,
		Default:  def,
	}
	if spec.Name == "" {
		return spec, fmt.Errorf("flag %q has no name", inner)
	}
	if len(parts) == 1 {
		if required || def != "" {
			return spec, fmt.Errorf("switch --%s cannot be required or have a default", spec.Name)
		}
		spec.Switch = true
		spec.Kind = params.KindBool
		return spec, nil
	}

	spec.Flag = true
	spec.Kind = params.Kind(parts[1])
	if len(parts) == 3 {
		if err := applyExtra(&spec, parts[2]); err != nil {
			return spec, err
		}
	}
	return spec, nil
}

// applyExtra interprets the third template field according to the kind.
func applyExtra(spec *params.Spec, extra string) error {
	switch spec.Kind {
	case params.KindEnum:
		spec.Choices = strings.Split(extra, ",")
	case params.KindList:
		spec.Elem = params.Kind(extra)
	case params.KindInt, params.KindInt64, params.KindFloat:
		lo, hi, err := parseRange(extra)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", spec.Name, err)
		}
		spec.Range = &params.Bounds{Min: lo, Max: hi}
	case params.KindString, params.KindWord:
		lo, hi, err := parseRange(extra)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", spec.Name, err)
		}
		spec.Length = &params.Size{Min: int(lo), Max: int(hi)}
	default:
		return fmt.Errorf("parameter %q: kind %s takes no constraint", spec.Name, spec.Kind)
	}
	return nil
}

// parseRange reads "min-max". A leading minus belongs to min.
func parseRange(text string) (float64, float64, error) {
	if len(text) < 3 {
		return 0, 0, fmt.Errorf("invalid range %q", text)
	}
	i := strings.Index(text[1:], "-")
	if i < 0 {
		return 0, 0, fmt.Errorf("invalid range %q", text)
	}
	i++
	lo, err := strconv.ParseFloat(text[:i], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", text)
	}
	hi, err := strconv.ParseFloat(text[i+1:], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", text)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("invalid range %q: min exceeds max", text)
	}
	return lo, hi, nil
}
