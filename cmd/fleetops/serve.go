package main

import (
	"fmt"

	attendanceweb "fleetops.com/fleetops/attendance/web/common"
	"fleetops.com/fleetops/security"
	"fleetops.com/fleetops/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the attendance HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		jwtSecret, err := security.DecodeSecret(a.settings.SigningSecret)
		if err != nil {
			return fmt.Errorf("failed to decode JWT secret: %w", err)
		}

		r := web.NewRouter(attendanceweb.Handler{
			Dm:                 a.dm,
			Reconciler:         a.reconciler,
			LegacyWorkbookPath: a.settings.LegacyWorkbookPath,
		}, jwtSecret)

		fmt.Printf("[INFO] listening on %s\n", a.settings.ListenAddr)
		return r.Run(a.settings.ListenAddr)
	},
}
