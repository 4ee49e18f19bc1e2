package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shorty/internal/config"
	"github.com/MrSnakeDoc/shorty/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "shorty",
	Short: "shorty is a small URL shortener.",
	Long: `shorty turns long URLs into short codes and redirects them back.

Running it without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// loadRuntime reads the environment and builds the logger every command shares.
func loadRuntime() (*config.Config, logger.Logger) {
	cfg := config.Load()
	return cfg, logger.New(cfg.LogLevel, cfg.PrettyLog)
}
