package app

import (
	"strings"

	"github.com/footprint-tools/verb/internal/dispatchers"
)

// Permissions grants every permission to the configured admins and none to
// anyone else. Ungated commands stay available to all actors.
type Permissions struct {
	admins map[string]bool
}

// NewPermissions parses a comma-separated admin list.
func NewPermissions(admins string) *Permissions {
	p := &Permissions{admins: make(map[string]bool)}
	for _, name := range strings.Split(admins, ",") {
		if name = strings.TrimSpace(name); name != "" {
			p.admins[name] = true
		}
	}
	return p
}

func (p *Permissions) HasPermission(actor dispatchers.Actor, _ string) bool {
	return actor != nil && p.admins[actor.Name()]
}

// Admins returns the admin names in no particular order.
func (p *Permissions) Admins() []string {
	out := make([]string, 0, len(p.admins))
	for name := range p.admins {
		out = append(out, name)
	}
	return out
}

var _ dispatchers.PermissionChecker = (*Permissions)(nil)
