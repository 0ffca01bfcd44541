package main

import (
	"context"
	"os"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/hooks"
)

func main() {
	hooks.RunOrDisabled("ruff-lint", func(input hooks.HookInput) (hooks.HookResult, int) {
		return hooks.RuffLint(context.Background(), input, hooks.LoadOptions(os.Stderr))
	})
}
