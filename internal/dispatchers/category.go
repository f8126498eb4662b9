package dispatchers

// CommandCategory groups commands in help output.
type CommandCategory int

const (
	CategoryUncategorized CommandCategory = iota
	CategoryBasics                        // echo, sum, whoami
	CategoryWorld                         // tp and other actor-facing commands
	CategoryConfig                        // config and aliases
	CategoryHistory                       // dispatch history
	CategoryAdmin                         // permission-gated maintenance
)

func (c CommandCategory) String() string {
	switch c {
	case CategoryBasics:
		return "basics"
	case CategoryWorld:
		return "world"
	case CategoryConfig:
		return "configure verb"
	case CategoryHistory:
		return "history"
	case CategoryAdmin:
		return "administration"
	default:
		return "other commands"
	}
}

var categoryOrder = []CommandCategory{
	CategoryBasics,
	CategoryWorld,
	CategoryConfig,
	CategoryHistory,
	CategoryAdmin,
	CategoryUncategorized,
}

// CategoryOrder returns the display order for categories.
func CategoryOrder() []CommandCategory {
	return categoryOrder
}
