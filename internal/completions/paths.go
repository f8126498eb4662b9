package completions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BinaryName returns the name of the running executable, "verb" if unknown.
func BinaryName() string {
	exe, err := os.Executable()
	if err != nil {
		return "verb"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if name := filepath.Base(exe); name != "" && name != "." {
		return name
	}
	return "verb"
}

// SourceInstructions returns the line a user adds to their rc file.
func SourceInstructions(shell Shell, bin string) string {
	switch shell {
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`eval "$(%s completions %s)"`, bin, shell)
	case ShellFish:
		return fmt.Sprintf(`%s completions fish | source`, bin)
	default:
		return ""
	}
}

// RcFile returns the rc file path for the given shell
func RcFile(shell Shell) string {
	switch shell {
	case ShellBash:
		return "~/.bashrc"
	case ShellZsh:
		return "~/.zshrc"
	case ShellFish:
		return "~/.config/fish/config.fish"
	default:
		return ""
	}
}

// AutoInstallPath returns the file a shell auto-loads completions from,
// or "" when the shell has no such directory.
func AutoInstallPath(home string, shell Shell, bin string) string {
	switch shell {
	case ShellFish:
		return filepath.Join(home, ".config", "fish", "completions", bin+".fish")
	case ShellBash:
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", bin)
	default:
		return ""
	}
}

// ErrNoAutoInstall is returned by Install for shells without an autoload dir.
var ErrNoAutoInstall = errors.New("shell has no completion autoload directory")

// Install writes script to the autoload path and returns it.
func Install(home string, shell Shell, bin, script string) (string, error) {
	path := AutoInstallPath(home, shell, bin)
	if path == "" {
		return "", ErrNoAutoInstall
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create completions dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return "", fmt.Errorf("write completions: %w", err)
	}
	return path, nil
}
