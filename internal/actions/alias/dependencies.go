package alias

import "github.com/footprint-tools/verb/internal/aliases"

type Deps struct {
	Add    func(aliases.Alias) error
	Remove func(string) error
	List   func() []aliases.Alias
	Reload func() error
	Path   func() string
}

// DepsFrom wires the handlers to an alias manager.
func DepsFrom(m *aliases.Manager) Deps {
	return Deps{
		Add:    m.Add,
		Remove: m.Remove,
		List:   m.List,
		Reload: m.Reload,
		Path:   m.Path,
	}
}
