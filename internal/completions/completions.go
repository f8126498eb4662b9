// Package completions generates shell completion scripts. The scripts call
// back into the binary ("verb complete -- <line>") so candidates always
// reflect the live command tree and the caller's permissions.
package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/footprint-tools/verb/internal/dispatchers"
)

// Shell identifies a supported shell.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// Shells lists the supported shells.
var Shells = []Shell{ShellBash, ShellZsh, ShellFish}

// ParseShell validates a shell name.
func ParseShell(name string) (Shell, error) {
	s := Shell(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Shells, s) {
		return s, nil
	}
	return "", fmt.Errorf("unsupported shell: %s", name)
}

// DetectShell guesses the user's shell from $SHELL.
func DetectShell() (Shell, bool) {
	s, err := ParseShell(filepath.Base(os.Getenv("SHELL")))
	return s, err == nil
}

// CommandInfo is a top-level word with the summary shown next to it.
type CommandInfo struct {
	Name    string
	Aliases []string
	Summary string
}

// TopLevel lists the ungated root literals of cmds in registration order.
// The summary comes from the shortest command under each word.
func TopLevel(cmds []*dispatchers.Command) []CommandInfo {
	var out []CommandInfo
	index := make(map[string]int)
	depth := make(map[string]int)

	for _, c := range cmds {
		if len(c.Path) == 0 || c.Path[0].Kind != dispatchers.NodeLiteral || c.Path[0].Permission != "" {
			continue
		}
		head := c.Path[0]
		i, ok := index[head.Name]
		if !ok {
			index[head.Name] = len(out)
			depth[head.Name] = len(c.Path)
			out = append(out, CommandInfo{Name: head.Name, Aliases: head.Aliases, Summary: c.Summary})
			continue
		}
		if len(c.Path) < depth[head.Name] && c.Summary != "" {
			depth[head.Name] = len(c.Path)
			out[i].Summary = c.Summary
		}
	}
	return out
}

// Candidates formats suggestions for a shell: one per line, quoted when a
// candidate contains whitespace.
func Candidates(suggestions []string) string {
	var b strings.Builder
	for _, s := range suggestions {
		if strings.ContainsAny(s, " \t") {
			s = `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String()
}
