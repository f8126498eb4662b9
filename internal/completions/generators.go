package completions

import (
	"fmt"
	"strings"
)

// Script returns the completion script for shell. bin is the command the
// script completes and calls back into.
func Script(shell Shell, bin string, commands []CommandInfo) (string, error) {
	switch shell {
	case ShellBash:
		return GenerateBash(bin), nil
	case ShellZsh:
		return GenerateZsh(bin, commands), nil
	case ShellFish:
		return GenerateFish(bin, commands), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", shell)
	}
}

func funcName(bin string) string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(bin)
}

// GenerateBash completes every word through "bin complete".
func GenerateBash(bin string) string {
	fn := funcName(bin)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s bash completion script\n", bin)
	fmt.Fprintf(&b, "%s_completions() {\n", fn)
	b.WriteString("    local line=\"${COMP_LINE:0:$COMP_POINT}\"\n")
	b.WriteString("    line=\"${line#* }\"\n")
	b.WriteString("    local IFS=$'\\n'\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(%s complete -- \"$line\" 2>/dev/null))\n", bin)
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -F %s_completions %s\n", fn, bin)
	return b.String()
}

// GenerateZsh describes top-level commands and completes deeper words
// through "bin complete".
func GenerateZsh(bin string, commands []CommandInfo) string {
	fn := funcName(bin)
	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n", bin)
	fmt.Fprintf(&b, "# %s zsh completion script\n\n", bin)

	fmt.Fprintf(&b, "%s_commands() {\n", fn)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		for _, name := range append([]string{c.Name}, c.Aliases...) {
			fmt.Fprintf(&b, "        '%s:%s'\n", name, zshEscape(c.Summary))
		}
	}
	b.WriteString("    )\n")
	b.WriteString("    _describe 'command' commands\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	fmt.Fprintf(&b, "        %s_commands\n", fn)
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    local line=\"${BUFFER[1,CURSOR]}\"\n")
	b.WriteString("    line=\"${line#* }\"\n")
	b.WriteString("    local -a candidates\n")
	fmt.Fprintf(&b, "    candidates=(\"${(@f)$(%s complete -- \"$line\" 2>/dev/null)}\")\n", bin)
	b.WriteString("    compadd -a candidates\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, bin)
	return b.String()
}

// GenerateFish lists top-level commands with descriptions and defers the
// rest to "bin complete".
func GenerateFish(bin string, commands []CommandInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s fish completion script\n", bin)
	fmt.Fprintf(&b, "complete -c %s -f\n", bin)
	for _, c := range commands {
		for _, name := range append([]string{c.Name}, c.Aliases...) {
			fmt.Fprintf(&b, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n",
				bin, name, fishEscape(c.Summary))
		}
	}
	fmt.Fprintf(&b, "complete -c %s -n 'not __fish_use_subcommand' -a '(%s complete -- (commandline -cp | string replace -r \"^\\S+\\s*\" \"\"))'\n",
		bin, bin)
	return b.String()
}

func zshEscape(s string) string {
	return strings.NewReplacer("'", "'\\''", ":", "\\:").Replace(s)
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
