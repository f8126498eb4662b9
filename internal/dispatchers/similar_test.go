package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"echo", "echo", 0},
		{"ecoh", "echo", 2},
		{"Config", "config", 0},
		{"kitten", "sitting", 3},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			require.Equal(t, tt.want, levenshtein(tt.a, tt.b))
		})
	}
}

func TestFindSimilarCommands(t *testing.T) {
	candidates := []string{"config", "confirm", "echo", "history", "config"}

	require.Equal(t, []string{"config", "confirm"}, FindSimilarCommands("confg", candidates, 3))
	require.Equal(t, []string{"config"}, FindSimilarCommands("confg", candidates, 1))
	require.Empty(t, FindSimilarCommands("zzzzzzzz", candidates, 3))
	require.Empty(t, FindSimilarCommands("echo", []string{"echo"}, 3))
	require.Nil(t, FindSimilarCommands("", candidates, 3))
}
