package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "curiomart start: %v\n", err)
		os.Exit(1)
	}

	// Either the signal context fires or a component requests shutdown.
	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "curiomart stop: %v\n", err)
		os.Exit(1)
	}
}
