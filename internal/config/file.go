package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/log"
	"github.com/footprint-tools/verb/internal/paths"
)

// File is a key=value configuration file on disk.
type File struct {
	Path string
}

// DefaultFile returns the file at paths.ConfigFilePath.
func DefaultFile() (*File, error) {
	p, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return &File{Path: p}, nil
}

// ReadLines returns the raw lines of the file. A missing or empty file is
// created with a commented template listing every visible key.
func (f *File) ReadLines() ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if len(data) == 0 {
		lines := template()
		if werr := f.WriteLines(lines); werr != nil {
			log.Warn("config: could not write default config: %v", werr)
		}
		return lines, nil
	}

	if err := os.Chmod(f.Path, 0600); err != nil {
		log.Warn("config: could not set permissions on config file: %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

// WriteLines replaces the file atomically via a temp file and rename.
func (f *File) WriteLines(lines []string) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}

	w := bufio.NewWriter(tmpFile)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		return err
	}

	success = true
	return nil
}

// Values parses the file.
func (f *File) Values() (map[string]string, error) {
	lines, err := f.ReadLines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Update reads, edits and writes the file while holding its lock.
func (f *File) Update(edit func(lines []string) []string) error {
	return f.WithLock(func() error {
		lines, err := f.ReadLines()
		if err != nil {
			return err
		}
		return f.WriteLines(edit(lines))
	})
}

func template() []string {
	lines := []string{
		"# verb configuration",
		"# Edit values below or use: verb config set <key> <value>",
		"",
	}

	for _, key := range domain.ConfigKeys {
		if key.Hidden {
			continue
		}
		if key.HideIfEmpty {
			lines = append(lines, "# "+key.Name+"=")
			continue
		}
		lines = append(lines, key.Name+"="+quote(DefaultValue(key.Name)))
	}

	return lines
}
