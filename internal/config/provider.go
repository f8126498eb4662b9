package config

import (
	"maps"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/log"
	"github.com/footprint-tools/verb/internal/usage"
)

// Provider resolves configuration as environment override, then file value,
// then built-in default. It implements domain.ConfigProvider.
type Provider struct {
	file      *File
	overrides map[string]string
}

// NewProvider reads and writes file. overrides, usually Env.Overrides(),
// shadow the file on reads but are never written.
func NewProvider(file *File, overrides map[string]string) *Provider {
	return &Provider{file: file, overrides: overrides}
}

// File returns the backing file.
func (p *Provider) File() *File {
	return p.file
}

func (p *Provider) Get(key string) (string, bool) {
	if v, ok := p.overrides[key]; ok {
		return v, true
	}

	cfg, err := p.file.Values()
	if err != nil {
		log.Warn("config: %v", err)
		return defaultFor(key)
	}
	if v, ok := cfg[key]; ok {
		return v, true
	}
	return defaultFor(key)
}

// GetAll returns every known key plus any unknown keys present in the file.
func (p *Provider) GetAll() (map[string]string, error) {
	result := Defaults()

	cfg, err := p.file.Values()
	if err != nil {
		return result, err
	}
	maps.Copy(result, cfg)
	maps.Copy(result, p.overrides)
	return result, nil
}

// Set rejects keys missing from domain.ConfigKeys.
func (p *Provider) Set(key, value string) error {
	if !domain.IsValidConfigKey(key) {
		return usage.InvalidConfigKey(key)
	}
	return p.file.Update(func(lines []string) []string {
		lines, _ = Set(lines, key, value)
		return lines
	})
}

func (p *Provider) Unset(key string) error {
	if !domain.IsValidConfigKey(key) {
		return usage.InvalidConfigKey(key)
	}
	return p.file.Update(func(lines []string) []string {
		lines, _ = Unset(lines, key)
		return lines
	})
}

var _ domain.ConfigProvider = (*Provider)(nil)
