package main

import (
	"fmt"

	attendance "fleetops.com/fleetops/attendance/core"
	"fleetops.com/fleetops/core"
	"fleetops.com/fleetops/infrastructure/communication"
	"fleetops.com/fleetops/infrastructure/devops"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "fleetops",
	Short:        "Fleet driver attendance service and tools",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default $FLEETOPS_CONFIG or fleetops.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(tokenCmd)
}

// app is the wiring shared by every subcommand that touches the database.
type app struct {
	settings   *devops.Settings
	dm         *core.DatabaseManager
	reconciler *attendance.Reconciler
}

func openApp() (*app, error) {
	settings, err := devops.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}
	if settings.Database.DSN == "" {
		return nil, fmt.Errorf("database dsn is not configured")
	}

	dm, err := core.New(
		core.Dialect(settings.Database.Dialect),
		settings.Database.DSN,
		settings.Database.MaxConnections,
		core.ParseLogLevel(settings.Database.LogLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	var opts []attendance.Option
	if settings.LegacyWorkbookPath != "" {
		opts = append(opts, attendance.WithSynchronizer(attendance.NewLegacyWorkbook(settings.LegacyWorkbookPath)))
	}
	if slack := communication.ConnectSlack(settings.Slack.Token, communication.SlackOption{
		InfoChannelID:  settings.Slack.InfoChannel,
		ErrorChannelID: settings.Slack.ErrorChannel,
	}); slack != nil {
		opts = append(opts, attendance.WithNotifier(slack))
	}

	return &app{
		settings:   settings,
		dm:         dm,
		reconciler: attendance.NewReconciler(dm.DB, opts...),
	}, nil
}

func (a *app) Close() {
	if err := a.dm.Close(); err != nil {
		fmt.Printf("[WARN] close database: %v\n", err)
	}
}
