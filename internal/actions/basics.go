package actions

import (
	"fmt"

	"github.com/footprint-tools/verb/internal/dispatchers"
)

// Echo returns its message unchanged, quotes included.
func Echo(ctx *dispatchers.Context) (any, error) {
	return ctx.String("message", ""), nil
}

// Sum adds a list of integers.
func Sum(ctx *dispatchers.Context) (any, error) {
	total := 0
	for _, v := range ctx.List("values") {
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("sum: unexpected value %v", v)
		}
		total += n
	}
	return total, nil
}

// Whoami names the calling actor.
func Whoami(ctx *dispatchers.Context) (any, error) {
	return ctx.ActorName(), nil
}

// TeleportHere sends the actor to spawn.
func TeleportHere(ctx *dispatchers.Context) (any, error) {
	return fmt.Sprintf("teleported %s to spawn", ctx.ActorName()), nil
}

// TeleportTo sends the actor to another player.
func TeleportTo(ctx *dispatchers.Context) (any, error) {
	target := ctx.String("player", "")
	if target == ctx.ActorName() {
		return nil, fmt.Errorf("cannot teleport %s to themselves", target)
	}
	return fmt.Sprintf("teleported %s to %s", ctx.ActorName(), target), nil
}
