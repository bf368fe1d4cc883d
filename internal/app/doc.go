// Package app bootstraps the batch commands.
//
// NewApplication loads configuration from the environment and the optional
// YAML file, applies command-line overrides, and initializes the global
// logger and the metrics provider. Run executes a stage under a context
// cancelled on SIGINT or SIGTERM and flushes metrics afterwards.
//
//	a, err := app.NewApplication(app.Options{DataDir: *dataDir, Command: "classifier"})
//	if err != nil {
//	    slog.Error("Failed to start", "error", err)
//	    os.Exit(1)
//	}
//	err = a.Run(func(ctx context.Context) error { ... })
//
// The package does not call os.Exit, leaving exit codes to main.
package app
