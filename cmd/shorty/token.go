package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shorty/internal/identity"
)

var (
	tokenUser string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issues a bearer token for a user.",
	Long: `Signs an access token with SHORTY_JWT_SECRET. Send it as
"Authorization: Bearer <token>" or in the shorty_token cookie.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := os.Getenv("SHORTY_JWT_SECRET")
		if secret == "" {
			return errors.New("SHORTY_JWT_SECRET is not set")
		}

		tok, err := identity.GenerateAccessToken(tokenUser, secret, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id carried by the token (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(tokenCmd)
}
