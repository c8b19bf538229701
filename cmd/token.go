package cmd

import (
	"fmt"
	"time"

	"collab-notifier/infrastructure/configuration"
	"collab-notifier/infrastructure/utils"

	"github.com/spf13/cobra"
)

// tokenCmd issues a bearer token for the admin API
var tokenCmd = &cobra.Command{
	Use:   "token [SUBJECT]",
	Short: "Issue an admin API token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secretKey := configuration.C.App.SecretKey
		if secretKey == "" {
			return fmt.Errorf("SECRET_KEY is not configured")
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := utils.GenerateToken(args[0], ttl, secretKey)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
