// Command mob drives the build-automation orchestrator for the native
// desktop application build pipeline. Flag parsing and config/logging
// bootstrap live in internal/cli; this file is intentionally thin.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ModOrganizer2/mob/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(cli.Run(ctx))
}
