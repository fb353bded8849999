package main

import (
	"fmt"
	"io"
	"os"

	"fleetops.com/fleetops/infrastructure/devops"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <destination>",
	Short: "Copy the legacy attendance workbook to destination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := devops.LoadSettings(configPath)
		if err != nil {
			return err
		}
		if settings.LegacyWorkbookPath == "" {
			return fmt.Errorf("legacyWorkbookPath is not configured")
		}
		n, err := copyFile(settings.LegacyWorkbookPath, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", n, args[0])
		return nil
	},
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", dst, err)
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
