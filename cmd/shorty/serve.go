package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shorty/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP server.",
	Long: `Migrates the link store, loads the reserved codes and serves the API,
the dashboard and the redirects until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log := loadRuntime()
	defer func() { _ = log.Sync() }()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	return a.Run()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
