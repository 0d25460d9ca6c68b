package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"brew-formatter/cmd"
)

// main hands control to the cobra command tree. Ctrl+C or SIGTERM cancels the
// context so a scan stops between files and watch mode shuts down cleanly.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
