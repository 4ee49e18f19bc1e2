package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shorty/internal/app"
	"github.com/MrSnakeDoc/shorty/internal/redis"
	redisstore "github.com/MrSnakeDoc/shorty/internal/store/redis"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manages the Redis redirect cache.",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drops every cached redirect.",
	Long: `Removes all shorty:link:* keys. Links are read from the database again
on their next redirect.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log := loadRuntime()
		defer func() { _ = log.Sync() }()

		if cfg.RedisAddr == "" {
			return errors.New("SHORTY_REDIS_ADDR is not set")
		}

		client, err := redis.New(cmd.Context(), app.CacheOptions(cfg), log)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		removed, err := redisstore.NewStore(client, cfg.CacheTTL).FlushCache(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ %d cached links dropped\n", removed)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
	rootCmd.AddCommand(cacheCmd)
}
