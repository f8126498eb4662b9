package config

import "github.com/footprint-tools/verb/internal/domain"

type Deps struct {
	Get    func(string) (string, bool)
	GetAll func() (map[string]string, error)
	Set    func(string, string) error
	Unset  func(string) error
}

// DepsFrom wires the handlers to a configuration provider.
func DepsFrom(p domain.ConfigProvider) Deps {
	return Deps{
		Get:    p.Get,
		GetAll: p.GetAll,
		Set:    p.Set,
		Unset:  p.Unset,
	}
}
