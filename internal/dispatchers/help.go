package dispatchers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/usage"
)

// formatUsage styles the usage line with the command words in Info color
// and the parameters muted.
func formatUsage(st domain.Styler, line string) string {
	cmdEnd := len(line)
	for i, c := range line {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}
	if i := strings.Index(line, " --"); i >= 0 && i < cmdEnd {
		cmdEnd = i
	}

	cmd := strings.TrimSpace(line[:cmdEnd])
	rest := ""
	if cmdEnd < len(line) {
		rest = line[cmdEnd:]
	}

	if rest == "" {
		return st.Info(cmd)
	}
	if cmd == "" {
		return st.Muted(rest)
	}
	return st.Info(cmd) + " " + st.Muted(rest)
}

// Help renders help for the commands under the literal words given. An
// empty list renders the overview of every command the actor may run.
func (e *Engine) Help(actor Actor, words []string, st domain.Styler) (string, error) {
	root := e.tree.Root()
	node := root
	for i, word := range words {
		var next *Node
		for _, c := range node.Children {
			if c.MatchesLiteral(word, e.cfg.CaseSensitive) && permitted(e.perms, actor, c.Permission) {
				next = c
				break
			}
		}
		if next == nil {
			var names []string
			for _, c := range node.Children {
				if c.Kind == NodeLiteral && permitted(e.perms, actor, c.Permission) {
					names = append(names, c.Names()...)
				}
			}
			similar := FindSimilarCommands(word, names, e.cfg.MaxSimilar)
			return "", usage.UnknownCommand(strings.Join(words[:i+1], " "), similar...)
		}
		node = next
	}

	cmds := e.visibleCommands(actor, node)
	var out bytes.Buffer

	if node == root {
		out.WriteString(st.Header("USAGE"))
		out.WriteString("\n   ")
		out.WriteString(formatUsage(st, "verb <command> [args] [flags]"))
		out.WriteString("\n\n")

		grouped := make(map[CommandCategory][]*Command)
		for _, cmd := range cmds {
			grouped[cmd.Category] = append(grouped[cmd.Category], cmd)
		}
		for _, cat := range categoryOrder {
			list := grouped[cat]
			if len(list) == 0 {
				continue
			}
			out.WriteString(st.Header(cat.String()))
			out.WriteString("\n")
			writeCommands(&out, st, list)
			out.WriteString("\n")
		}
		out.WriteString("See 'help <command>' for detailed help on a specific command.\n")
		return out.String(), nil
	}

	out.WriteString(strings.Join(node.Path, " "))
	if len(node.Leaves) > 0 && node.Leaves[0].Summary != "" {
		out.WriteString(" - ")
		out.WriteString(node.Leaves[0].Summary)
	}
	out.WriteString("\n\n")

	if len(node.Leaves) > 0 && node.Leaves[0].Description != "" {
		out.WriteString(node.Leaves[0].Description)
		out.WriteString("\n\n")
	}

	if len(cmds) > 0 {
		out.WriteString(st.Header("COMMANDS"))
		out.WriteString("\n")
		writeCommands(&out, st, cmds)
		out.WriteString("\n")
	}

	var flagLines []string
	seen := make(map[string]bool)
	for _, cmd := range cmds {
		for _, f := range cmd.Flags {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			name := e.cfg.FlagPrefix + f.Name
			if f.Short != "" {
				name = e.cfg.ShortFlagPrefix + f.Short + ", " + name
			}
			if f.Flag {
				name += " <" + string(f.Kind) + ">"
			}
			flagLines = append(flagLines, fmt.Sprintf("   %s  %s\n", st.Info(fmt.Sprintf("%-24s", name)), f.Description))
		}
	}
	if len(flagLines) > 0 {
		out.WriteString(st.Header("FLAGS"))
		out.WriteString("\n")
		for _, line := range flagLines {
			out.WriteString(line)
		}
		out.WriteString("\n")
	}

	return out.String(), nil
}

func writeCommands(out *bytes.Buffer, st domain.Styler, cmds []*Command) {
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	for _, cmd := range cmds {
		fmt.Fprintf(out, "   %s\n", formatUsage(st, cmd.Usage()))
		if cmd.Summary != "" {
			fmt.Fprintf(out, "      %s\n", cmd.Summary)
		}
	}
}

// visibleCommands returns the commands at or below n that the actor can
// reach, skipping branches behind a permission it lacks.
func (e *Engine) visibleCommands(actor Actor, n *Node) []*Command {
	var out []*Command
	var visit func(*Node)
	visit = func(d *Node) {
		for _, leaf := range d.Leaves {
			if permitted(e.perms, actor, leaf.Permission) {
				out = append(out, leaf)
			}
		}
		for _, c := range d.Children {
			if permitted(e.perms, actor, c.Permission) {
				visit(c)
			}
		}
	}
	visit(n)
	return out
}
