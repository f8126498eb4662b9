package params

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/verb/internal/stream"
	"github.com/footprint-tools/verb/internal/usage"
)

// TagLower marks a string parameter whose value is folded to lower case.
const TagLower = "lower"

// DefaultRegistry returns a registry populated with the built-in kinds.
// Every call returns a fresh registry.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindString, stringType{})
	r.RegisterConstrained(KindString, func(s Spec) bool { return s.HasTag(TagLower) }, lowerType{})
	r.Register(KindWord, wordType{})
	r.Register(KindInt, intType{})
	r.Register(KindInt64, int64Type{})
	r.Register(KindFloat, floatType{})
	r.Register(KindBool, boolType{})
	r.Register(KindUUID, uuidType{})
	r.Register(KindEnum, enumType{})
	r.Register(KindDuration, durationType{})
	r.Register(KindList, listType{registry: r})
	return r
}

type stringType struct{}

func (stringType) Priority() Priority { return PriorityLowest }

func (stringType) Parse(s *stream.Stream, _ Context, spec Spec) (any, error) {
	if spec.Greedy {
		return s.ReadRemaining(), nil
	}
	return s.ReadString()
}

type lowerType struct{}

func (lowerType) Priority() Priority { return PriorityLowest }

func (lowerType) Parse(s *stream.Stream, ctx Context, spec Spec) (any, error) {
	v, err := stringType{}.Parse(s, ctx, spec)
	if err != nil {
		return nil, err
	}
	return strings.ToLower(v.(string)), nil
}

type wordType struct{}

func (wordType) Priority() Priority { return PriorityLowest }

func (wordType) Parse(s *stream.Stream, _ Context, _ Spec) (any, error) {
	return s.ReadUnquotedWord()
}

type intType struct{}

func (intType) Priority() Priority { return PriorityNormal }

func (intType) Parse(s *stream.Stream, _ Context, _ Spec) (any, error) {
	n, err := s.ReadInt()
	if err != nil {
		return nil, err
	}
	return int(n), nil
}

type int64Type struct{}

func (int64Type) Priority() Priority { return PriorityNormal }

func (int64Type) Parse(s *stream.Stream, _ Context, _ Spec) (any, error) {
	return s.ReadInt()
}

type floatType struct{}

func (floatType) Priority() Priority { return PriorityNormal }

func (floatType) Parse(s *stream.Stream, _ Context, _ Spec) (any, error) {
	return s.ReadFloat()
}

type boolType struct{}

func (boolType) Priority() Priority { return PriorityHighest }

func (boolType) Parse(s *stream.Stream, _ Context, _ Spec) (any, error) {
	return s.ReadBool()
}

func (boolType) Suggest(Context, Spec, string) []string {
	return []string{"true", "false"}
}

type uuidType struct{}

func (uuidType) Priority() Priority { return PriorityHighest }

func (uuidType) Parse(s *stream.Stream, _ Context, _ Spec) (any, error) {
	token, err := s.ReadString()
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(token)
	if err != nil {
		e := usage.InvalidUUID(token)
		e.Cause = err
		return nil, e
	}
	return id, nil
}

type enumType struct{}

func (enumType) Priority() Priority { return PriorityHighest }

func (enumType) Parse(s *stream.Stream, _ Context, spec Spec) (any, error) {
	token, err := s.ReadString()
	if err != nil {
		return nil, err
	}
	for _, c := range spec.Choices {
		if strings.EqualFold(c, token) {
			return c, nil
		}
	}
	return nil, usage.EnumNotFound(token, spec.Choices)
}

func (enumType) Suggest(_ Context, spec Spec, _ string) []string {
	return spec.Choices
}

type durationType struct{}

func (durationType) Priority() Priority { return PriorityNormal }

func (durationType) Parse(s *stream.Stream, _ Context, _ Spec) (any, error) {
	token, err := s.ReadString()
	if err != nil {
		return nil, err
	}
	d, err := time.ParseDuration(token)
	if err != nil {
		e := usage.InvalidDuration(token)
		e.Cause = err
		return nil, e
	}
	return d, nil
}

// listType consumes every remaining token, parsing each as spec.Elem.
type listType struct {
	registry *Registry
}

func (listType) Priority() Priority { return PriorityLowest }

func (l listType) Parse(s *stream.Stream, ctx Context, spec Spec) (any, error) {
	elem := Spec{Name: spec.Name, Kind: spec.Elem, Choices: spec.Choices, Range: spec.Range, Required: true}
	if elem.Kind == "" {
		elem.Kind = KindString
	}
	var values []any
	for s.HasMore() {
		v, err := l.registry.Parse(s, ctx, elem)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (l listType) Suggest(ctx Context, spec Spec, prefix string) []string {
	elem := Spec{Name: spec.Name, Kind: spec.Elem, Choices: spec.Choices}
	if elem.Kind == "" || elem.Kind == KindList {
		return nil
	}
	return l.registry.Suggest(ctx, elem, prefix)
}
