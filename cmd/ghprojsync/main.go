// Package main is the entry point for the ghprojsync CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ghprojsync/internal/backend/githubprojects"
	"ghprojsync/internal/cli"
	"ghprojsync/internal/commands"
	"ghprojsync/internal/config"
	"ghprojsync/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return githubprojects.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
