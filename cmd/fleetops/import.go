package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	attendance "fleetops.com/fleetops/attendance/core"
	"fleetops.com/fleetops/infrastructure/filesystem"
	"github.com/spf13/cobra"
)

var (
	importBucket string
	importFromS3 bool
)

var importCmd = &cobra.Command{
	Use:   "import <file | key>",
	Short: "Import an attendance spreadsheet from disk or S3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		bucket := importBucket
		if bucket == "" && importFromS3 {
			if bucket = a.settings.Import.S3Bucket; bucket == "" {
				return fmt.Errorf("--s3 given but import.s3Bucket is not configured")
			}
		}

		var data []byte
		if bucket != "" {
			store, err := filesystem.NewStore(cmd.Context())
			if err != nil {
				return err
			}
			data, err = store.ReadAll(cmd.Context(), bucket, args[0])
			if err != nil {
				return err
			}
		} else {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return err
			}
		}

		result, err := a.reconciler.Import(cmd.Context(), nil, filepath.Base(args[0]), data)
		var importErr *attendance.ImportError
		if errors.As(err, &importErr) {
			out := cmd.ErrOrStderr()
			fmt.Fprintln(out, importErr.Message)
			for _, e := range importErr.Errors {
				fmt.Fprintf(out, "  %s\n", e)
			}
			return fmt.Errorf("import rejected, %d row(s) would otherwise have applied", importErr.SuccessCount)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d record(s) (%s format)\n", result.Count, result.Format)
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importBucket, "bucket", "", "read the key from this S3 bucket")
	importCmd.Flags().BoolVar(&importFromS3, "s3", false, "read the key from the configured import bucket")
}
