// Package aliases loads user-defined command shortcuts from a YAML file and
// registers each one as a command that re-dispatches its expansion.
package aliases

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/verb/internal/dispatchers"
)

// Alias maps a single word to a command line. Arguments typed after the
// alias are appended to Run.
type Alias struct {
	Name        string `yaml:"name"`
	Run         string `yaml:"run"`
	Description string `yaml:"description,omitempty"`
}

type fileFormat struct {
	Aliases []Alias `yaml:"aliases"`
}

var validName = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

var (
	ErrInvalidName = errors.New("alias name must be a lowercase word")
	ErrEmptyRun    = errors.New("alias has nothing to run")
	ErrExists      = errors.New("name already taken by a command")
	ErrChained     = errors.New("alias may not expand to another alias")
	ErrNotFound    = errors.New("no such alias")
)

// Manager owns the aliases registered on an engine.
type Manager struct {
	mu      sync.Mutex
	engine  *dispatchers.Engine
	path    string
	aliases []Alias
}

// NewManager binds to engine and the YAML file at path. Nothing is
// registered until Load.
func NewManager(engine *dispatchers.Engine, path string) *Manager {
	return &Manager{engine: engine, path: path}
}

// Path returns the aliases file.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the file and registers every alias. A missing file is empty.
// Aliases that fail validation are skipped and reported together.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("aliases: read %s: %w", m.path, err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("aliases: parse %s: %w", m.path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, a := range f.Aliases {
		if err := m.register(a); err != nil {
			errs = append(errs, fmt.Errorf("alias %q: %w", a.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Reload unregisters every alias and loads the file again.
func (m *Manager) Reload() error {
	m.mu.Lock()
	for _, a := range m.aliases {
		_, _, _ = m.engine.UnregisterPath([]dispatchers.Segment{dispatchers.Lit(a.Name)})
	}
	m.aliases = nil
	m.mu.Unlock()

	return m.Load()
}

// Add registers a and saves the file.
func (m *Manager) Add(a Alias) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.register(a); err != nil {
		return err
	}
	return m.save()
}

// Remove unregisters the alias and saves the file.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.aliases, func(a Alias) bool { return a.Name == name })
	if idx < 0 {
		return ErrNotFound
	}

	if _, _, err := m.engine.UnregisterPath([]dispatchers.Segment{dispatchers.Lit(name)}); err != nil {
		return err
	}
	m.aliases = slices.Delete(m.aliases, idx, idx+1)
	return m.save()
}

// List returns the registered aliases in the order they were added.
func (m *Manager) List() []Alias {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.aliases)
}

// Names returns the alias names, used to suggest arguments for `alias remove`.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.aliases))
	for i, a := range m.aliases {
		names[i] = a.Name
	}
	return names
}

func (m *Manager) isAlias(name string) bool {
	return slices.ContainsFunc(m.aliases, func(a Alias) bool { return a.Name == name })
}

func (m *Manager) register(a Alias) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Run = strings.TrimSpace(a.Run)

	if !validName.MatchString(a.Name) {
		return ErrInvalidName
	}
	if a.Run == "" {
		return ErrEmptyRun
	}
	if m.isAlias(a.Name) || m.engine.Tree().Find([]dispatchers.Segment{dispatchers.Lit(a.Name)}) != nil {
		return ErrExists
	}
	target, _, _ := strings.Cut(a.Run, " ")
	if target == a.Name || m.isAlias(target) {
		return ErrChained
	}

	summary := a.Description
	if summary == "" {
		summary = "alias for: " + a.Run
	}

	cmd, err := dispatchers.NewCommand(dispatchers.CommandSpec{
		Template: a.Name + " [args...]",
		Summary:  summary,
		Handler:  m.handler(a),
	})
	if err != nil {
		return err
	}
	if _, err := m.engine.Register(cmd); err != nil {
		return err
	}

	m.aliases = append(m.aliases, a)
	return nil
}

func (m *Manager) handler(a Alias) dispatchers.Handler {
	return func(ctx *dispatchers.Context) (any, error) {
		line := a.Run
		if extra := ctx.String("args", ""); extra != "" {
			line += " " + extra
		}
		return m.engine.Dispatch(ctx.Actor(), line)
	}
}

// save writes the file through a temp file and rename.
func (m *Manager) save() error {
	data, err := yaml.Marshal(fileFormat{Aliases: m.aliases})
	if err != nil {
		return fmt.Errorf("aliases: encode: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("aliases: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".aliases.tmp.*")
	if err != nil {
		return fmt.Errorf("aliases: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("aliases: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("aliases: write: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.path); err != nil {
		return fmt.Errorf("aliases: write: %w", err)
	}
	return nil
}
