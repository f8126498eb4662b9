package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const appDirName = "verb"

var (
	overrideMu sync.RWMutex
	configFile string
)

// SetConfigFile points ConfigFilePath at path. An empty path restores the
// default. Used by the --config flag and VERB_CONFIG.
func SetConfigFile(path string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	configFile = path
}

// AppDataDir returns the directory for configuration, aliases and logs,
// creating it with 0700 permissions:
//   - macOS: ~/Library/Application Support/verb
//   - Linux: $XDG_CONFIG_HOME/verb or ~/.config/verb
//   - Windows: %AppData%\verb
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the directory for machine-local data such as the
// history database:
//   - macOS: ~/Library/Application Support/verb
//   - Linux: $XDG_DATA_HOME/verb or ~/.local/share/verb
//   - Windows: %LOCALAPPDATA%\verb
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// ConfigFilePath returns the key=value configuration file.
func ConfigFilePath() (string, error) {
	overrideMu.RLock()
	override := configFile
	overrideMu.RUnlock()
	if override != "" {
		return filepath.Abs(override)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, "verbrc"), nil
}

// DatabasePath returns the default history database location.
func DatabasePath() string {
	return filepath.Join(AppLocalDataDir(), "history.db")
}

// AliasesFilePath returns the default user aliases file.
func AliasesFilePath() string {
	return filepath.Join(AppDataDir(), "aliases.yaml")
}

// LogFilePath returns the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "verb.log")
}
