package config

import (
	"fmt"
	"strings"
)

const bom = "\uFEFF"

// Parse reads key=value lines. Blank lines and lines starting with '#' are
// skipped, a trailing " # comment" is dropped, and a value wrapped in
// matching quotes is unwrapped. Later keys win.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string, len(lines))

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, bom)
		}

		key, value, ok, err := splitLine(line)
		if err != nil {
			return nil, fmt.Errorf("config: line %d: %w", i+1, err)
		}
		if !ok {
			continue
		}
		cfg[key] = value
	}

	return cfg, nil
}

// splitLine reports ok=false for blank and comment lines.
func splitLine(line string) (key, value string, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}

	k, v, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false, fmt.Errorf("missing '=' in %q", trimmed)
	}
	key = strings.TrimSpace(k)
	if key == "" {
		return "", "", false, fmt.Errorf("empty key in %q", trimmed)
	}

	value, _ = splitComment(v)
	return key, unquote(value), true, nil
}

// splitComment separates "value # note" into value and "# note".
func splitComment(v string) (value, comment string) {
	if idx := strings.Index(v, " #"); idx >= 0 {
		return strings.TrimSpace(v[:idx]), strings.TrimSpace(v[idx:])
	}
	return strings.TrimSpace(v), ""
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

func quote(v string) string {
	if strings.ContainsAny(v, " \t#") {
		return `"` + v + `"`
	}
	return v
}

// Set rewrites the line holding key, keeping any trailing comment, or appends
// a new line. It reports whether an existing line was updated.
func Set(lines []string, key, value string) ([]string, bool) {
	for i, line := range lines {
		k, _, ok, err := splitLine(line)
		if err != nil || !ok || k != key {
			continue
		}

		_, v, _ := strings.Cut(strings.TrimSpace(line), "=")
		if _, comment := splitComment(v); comment != "" {
			lines[i] = key + "=" + quote(value) + " " + comment
		} else {
			lines[i] = key + "=" + quote(value)
		}
		return lines, true
	}

	return append(lines, key+"="+quote(value)), false
}

// Unset drops every line holding key and reports whether one was found.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false

	for _, line := range lines {
		if k, _, ok, err := splitLine(line); err == nil && ok && k == key {
			removed = true
			continue
		}
		out = append(out, line)
	}

	return out, removed
}
