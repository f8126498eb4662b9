package params

import (
	"unicode/utf8"

	"github.com/footprint-tools/verb/internal/usage"
)

// Validate applies the range and size limits declared on spec to a parsed value.
func Validate(spec Spec, v any) error {
	if spec.Range != nil {
		if n, ok := number(v); ok && (n < spec.Range.Min || n > spec.Range.Max) {
			return usage.NumberNotInRange(spec.Range.Min, spec.Range.Max, n)
		}
	}
	if spec.Length == nil {
		return nil
	}
	switch val := v.(type) {
	case string:
		n := utf8.RuneCountInString(val)
		if n < spec.Length.Min || n > spec.Length.Max {
			return usage.InvalidStringSize(val, spec.Length.Min, spec.Length.Max)
		}
	case []any:
		if len(val) < spec.Length.Min || len(val) > spec.Length.Max {
			return usage.InvalidListSize(spec.Length.Min, spec.Length.Max, len(val))
		}
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
