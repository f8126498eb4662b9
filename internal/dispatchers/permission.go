package dispatchers

// PermissionChecker decides whether an actor holds a permission.
type PermissionChecker interface {
	HasPermission(actor Actor, permission string) bool
}

// PermissionFunc adapts a function to PermissionChecker.
type PermissionFunc func(actor Actor, permission string) bool

func (f PermissionFunc) HasPermission(actor Actor, permission string) bool {
	return f(actor, permission)
}

// AllowAll grants every permission.
var AllowAll PermissionChecker = PermissionFunc(func(Actor, string) bool { return true })

// permitted reports whether actor may pass a gate. An empty permission is
// always granted.
func permitted(checker PermissionChecker, actor Actor, permission string) bool {
	if permission == "" {
		return true
	}
	return checker.HasPermission(actor, permission)
}

// reachable reports whether actor may run at least one command at or below
// n, not counting n's own permission. When it may not, the permission
// missing from the first such command is returned.
func reachable(checker PermissionChecker, actor Actor, n *Node) (bool, string) {
	if len(n.access) == 0 {
		return true, ""
	}
	denied := ""
	for _, req := range n.access {
		missing := ""
		for _, p := range req {
			if !permitted(checker, actor, p) {
				missing = p
				break
			}
		}
		if missing == "" {
			return true, ""
		}
		if denied == "" {
			denied = missing
		}
	}
	return false, denied
}
