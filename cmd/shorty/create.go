package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shorty/internal/app"
	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/shortener"
)

var (
	createURL  string
	createUser string
	createCode string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a short link from the command line.",
	Long: `Allocates a short code for a long URL on behalf of a user and prints the
resulting short URL.

Example:
  shorty create --url="https://go.dev/doc" --user=alice
  shorty create --url="https://go.dev/doc" --user=alice --code=go-docs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log := loadRuntime()
		defer func() { _ = log.Sync() }()

		core, err := app.NewCore(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := core.Close(); err != nil {
				log.Warnf("failed to close database: %v", err)
			}
		}()

		link, err := core.Allocator.Allocate(cmd.Context(), shortener.Request{
			URL:        createURL,
			UserID:     createUser,
			CustomCode: createCode,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", domain.ErrorMessage(err), err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Code: %s\n", link.ShortCode)
		fmt.Fprintf(out, "Short URL: %s/%s\n", cfg.BaseURL, link.ShortCode)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createURL, "url", "u", "", "long URL to shorten (required)")
	createCmd.Flags().StringVar(&createUser, "user", "", "owner of the link (required)")
	createCmd.Flags().StringVarP(&createCode, "code", "c", "", "custom short code")
	_ = createCmd.MarkFlagRequired("url")
	_ = createCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(createCmd)
}
