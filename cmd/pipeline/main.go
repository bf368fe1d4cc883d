package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tradeconc/internal/app"
	"tradeconc/internal/operations"
)

func main() {
	dataDir := flag.String("data", "", "data directory holding the regime tables (defaults to ~/Downloads/italy)")
	flag.Parse()

	a, err := app.NewApplication(app.Options{DataDir: *dataDir, Command: "pipeline"})
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	err = a.Run(func(ctx context.Context) error {
		manager, err := operations.NewPipeline(a.Config, a.Logger, a.Metrics, a.Out)
		if err != nil {
			return err
		}

		states, err := manager.Execute(ctx)
		fmt.Fprintln(a.Out)
		for _, s := range states {
			fmt.Fprintf(a.Out, "%-12s %-10s %s\n", s.ID, s.GetStatus(), s.Duration().Round(time.Millisecond))
		}
		return err
	})
	if err != nil {
		slog.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}
}
