package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "empty input",
			lines: []string{},
			want:  map[string]string{},
		},
		{
			name:  "blank and comment lines are skipped",
			lines: []string{"# verb configuration", "", "   ", "actor=steve", "  # indented"},
			want:  map[string]string{"actor": "steve"},
		},
		{
			name:  "whitespace around key and value is trimmed",
			lines: []string{"  actor  =  steve  ", "theme=  neon"},
			want:  map[string]string{"actor": "steve", "theme": "neon"},
		},
		{
			name:  "equals sign in value",
			lines: []string{"http_addr=host=a", "token=SGVsbG8="},
			want:  map[string]string{"http_addr": "host=a", "token": "SGVsbG8="},
		},
		{
			name:  "quoted values are unwrapped",
			lines: []string{`db_path="/tmp/my history.db"`, "actor='the console'"},
			want:  map[string]string{"db_path": "/tmp/my history.db", "actor": "the console"},
		},
		{
			name:  "trailing comment is dropped",
			lines: []string{"cooldown_per_sec=5 # per actor"},
			want:  map[string]string{"cooldown_per_sec": "5"},
		},
		{
			name:  "hash without leading space is part of the value",
			lines: []string{"special=!@#$%^&*()"},
			want:  map[string]string{"special": "!@#$%^&*()"},
		},
		{
			name:  "empty value is valid",
			lines: []string{"actor="},
			want:  map[string]string{"actor": ""},
		},
		{
			name:  "byte order mark is stripped",
			lines: []string{"\uFEFFactor=steve", "theme=mono"},
			want:  map[string]string{"actor": "steve", "theme": "mono"},
		},
		{
			name:  "last duplicate wins",
			lines: []string{"actor=a", "actor=b"},
			want:  map[string]string{"actor": "b"},
		},
		{
			name:    "line without equals sign",
			lines:   []string{"actor=steve", "garbage"},
			wantErr: true,
		},
		{
			name:    "empty key",
			lines:   []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.lines)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		key, value  string
		wantLines   []string
		wantUpdated bool
	}{
		{
			name:      "append to empty",
			lines:     []string{},
			key:       "actor",
			value:     "steve",
			wantLines: []string{"actor=steve"},
		},
		{
			name:        "update existing",
			lines:       []string{"# header", "", "  actor = alex  ", "theme=neon"},
			key:         "actor",
			value:       "steve",
			wantLines:   []string{"# header", "", "actor=steve", "theme=neon"},
			wantUpdated: true,
		},
		{
			name:        "keep trailing comment",
			lines:       []string{"cooldown_per_sec=1 # per actor"},
			key:         "cooldown_per_sec",
			value:       "5",
			wantLines:   []string{"cooldown_per_sec=5 # per actor"},
			wantUpdated: true,
		},
		{
			name:      "quote values with spaces",
			lines:     nil,
			key:       "db_path",
			value:     "/tmp/my history.db",
			wantLines: []string{`db_path="/tmp/my history.db"`},
		},
		{
			name:      "commented key is not updated",
			lines:     []string{"# color_error="},
			key:       "color_error",
			value:     "196",
			wantLines: []string{"# color_error=", "color_error=196"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, updated := Set(tt.lines, tt.key, tt.value)
			require.Equal(t, tt.wantLines, got)
			require.Equal(t, tt.wantUpdated, updated)

			cfg, err := Parse(got)
			require.NoError(t, err)
			require.Equal(t, tt.value, cfg[tt.key])
		})
	}
}

func TestUnset(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		key         string
		wantLines   []string
		wantRemoved bool
	}{
		{
			name:  "empty",
			lines: []string{},
			key:   "actor",
		},
		{
			name:        "remove existing and keep comments",
			lines:       []string{"# header", "", "actor=steve", "theme=neon"},
			key:         "actor",
			wantLines:   []string{"# header", "", "theme=neon"},
			wantRemoved: true,
		},
		{
			name:      "missing key",
			lines:     []string{"theme=neon"},
			key:       "actor",
			wantLines: []string{"theme=neon"},
		},
		{
			name:        "duplicates are all removed",
			lines:       []string{"actor=a", "  actor = b  "},
			key:         "actor",
			wantRemoved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := Unset(tt.lines, tt.key)
			require.Equal(t, tt.wantLines, got)
			require.Equal(t, tt.wantRemoved, removed)
		})
	}
}
