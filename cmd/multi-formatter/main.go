package main

import (
	"context"
	"os"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/hooks"
)

func main() {
	hooks.RunOrDisabled("multi-formatter", func(input hooks.HookInput) (hooks.HookResult, int) {
		return hooks.MultiFormatter(context.Background(), input, hooks.LoadOptions(os.Stderr))
	})
}
