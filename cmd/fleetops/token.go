package main

import (
	"fmt"

	"fleetops.com/fleetops/infrastructure/devops"
	"fleetops.com/fleetops/security"
	"github.com/spf13/cobra"
)

var (
	tokenIdentity security.FleetIdentity
	tokenTTL      int64
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := devops.LoadSettings(configPath)
		if err != nil {
			return err
		}
		token, err := security.CreateIdentityToken(&tokenIdentity, settings.SigningSecret, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenIdentity.ID, "id", "", "user id")
	tokenCmd.Flags().StringVar(&tokenIdentity.UserName, "name", "", "user name")
	tokenCmd.Flags().StringVar(&tokenIdentity.Email, "email", "", "email")
	tokenCmd.Flags().StringVar(&tokenIdentity.Role, "role", security.RoleSiteManager, "admin, site_manager or viewer")
	tokenCmd.Flags().Int64Var(&tokenTTL, "ttl", 3600, "lifetime in seconds")
	_ = tokenCmd.MarkFlagRequired("id")
}
