package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balls/internal/api"
	"github.com/vovakirdan/tui-balls/internal/storage"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the leaderboard as JSON",
	Long: `Start a read-only HTTP server over the scores database.

Endpoints:
  GET  /healthz
  GET  /difficulties
  GET  /scores/{difficulty}?limit=n
  GET  /stats
  GET  /stats/{difficulty}
  POST /records/inspect

Examples:
  balls api
  balls api --http 127.0.0.1:9000 --db ./scores.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("balls-api", false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := api.NewHandler(api.HandlerDeps{Scores: store, Logger: logger})
	if err := api.Serve(ctx, flagHTTPAddr, h.Router(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
