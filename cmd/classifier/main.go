package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tradeconc/internal/app"
	"tradeconc/internal/classifier"
)

func main() {
	dataDir := flag.String("data", "", "data directory holding the regime tables (defaults to ~/Downloads/italy)")
	flag.Parse()

	a, err := app.NewApplication(app.Options{DataDir: *dataDir, Command: "classifier"})
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	err = a.Run(func(ctx context.Context) error {
		_, err := classifier.New(a.Config, a.Logger, a.Metrics, a.Out).Run(ctx)
		return err
	})
	if err != nil {
		slog.Error("Classification failed", "error", err)
		os.Exit(1)
	}
}
