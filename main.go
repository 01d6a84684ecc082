package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/A-mIn3/eaphammer/pkg/cli"
	"github.com/A-mIn3/eaphammer/pkg/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "[!] Error: %v\n", err)
		cancel()
		os.Exit(config.ExitCode(err))
	}
}
