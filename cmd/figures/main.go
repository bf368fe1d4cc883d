package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tradeconc/internal/app"
	"tradeconc/internal/figures"
)

func main() {
	dataDir := flag.String("data", "", "data directory holding the final summary table (defaults to ~/Downloads/italy)")
	flag.Parse()

	a, err := app.NewApplication(app.Options{DataDir: *dataDir, Command: "figures"})
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	err = a.Run(func(ctx context.Context) error {
		_, err := figures.New(a.Config, a.Logger, a.Metrics, a.Out).Export(ctx)
		return err
	})
	if err != nil {
		slog.Error("Figure export failed", "error", err)
		os.Exit(1)
	}
}
