package actions

import "github.com/footprint-tools/verb/internal/dispatchers"

func ShowVersion(ctx *dispatchers.Context) (any, error) {
	return showVersion(ctx, defaultDeps())
}

func showVersion(_ *dispatchers.Context, deps actionDependencies) (any, error) {
	return "verb version " + deps.Version(), nil
}
