// Gen-jwt prints a token accepted by the API. Run from project root: go run ./scripts/gen-jwt --user <id>
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/token"
)

var (
	userID string
	ttl    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "gen-jwt",
	Short: "Print a signed token for a user id",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := ""
		if cfg := config.Get(); cfg != nil {
			secret = cfg.JWTSecret
		}
		if secret == "" {
			secret = "change-me"
		}
		svc, err := token.New([]byte(secret), ttl, nil)
		if err != nil {
			return err
		}
		signed, err := svc.Issue(userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&userID, "user", "test-user", "user id to put in the token")
	rootCmd.Flags().DurationVar(&ttl, "ttl", token.DefaultTTL, "token lifetime")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
