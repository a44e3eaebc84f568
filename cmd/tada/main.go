package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Makepad-fr/tada/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	// Hand the args to the CLI runner; it owns the store for this process.
	code := cli.Execute(ctx, os.Args[1:], &cli.App{})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
