package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	attendance "fleetops.com/fleetops/attendance/core"
	"fleetops.com/fleetops/core"
	"fleetops.com/fleetops/infrastructure/communication"
	"fleetops.com/fleetops/infrastructure/devops"
	"fleetops.com/fleetops/infrastructure/filesystem"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

type objectReader interface {
	ReadAll(ctx context.Context, bucket string, key string) ([]byte, error)
}

// importObject runs one uploaded spreadsheet through the reconciler.
func importObject(ctx context.Context, store objectReader, rec *attendance.Reconciler, bucket, key string) error {
	data, err := store.ReadAll(ctx, bucket, key)
	if err != nil {
		return err
	}

	result, err := rec.Import(ctx, nil, path.Base(key), data)
	var importErr *attendance.ImportError
	if errors.As(err, &importErr) {
		fmt.Printf("[ERROR] %s rejected: %s\n", key, importErr.Message)
		for _, e := range importErr.Errors {
			fmt.Printf("[ERROR]   %s\n", e)
		}
		return err
	}
	if err != nil {
		return err
	}

	fmt.Printf("[INFO] %s imported %d record(s) (%s format)\n", key, result.Count, result.Format)
	for _, w := range result.Warnings {
		fmt.Printf("[WARN]   %s\n", w)
	}
	return nil
}

// resolveDSN prefers a DSN from settings and falls back to the SSM
// database list, looked up by FLEETOPS_DATABASE.
func resolveDSN(ctx context.Context, settings *devops.Settings) (core.Dialect, string, error) {
	if settings.Database.DSN != "" {
		return core.Dialect(settings.Database.Dialect), settings.Database.DSN, nil
	}

	name := os.Getenv("FLEETOPS_DATABASE")
	if name == "" {
		return "", "", fmt.Errorf("neither DSN nor FLEETOPS_DATABASE is set")
	}
	entries, err := devops.LoadDBConfig(ctx)
	if err != nil {
		return "", "", err
	}
	entry, err := devops.FindDBEntry(entries, name)
	if err != nil {
		return "", "", err
	}
	dialect := core.Dialect(strings.ToLower(entry.Dialect))
	return dialect, entry.GetDSN(name), nil
}

func HandleRequest(ctx context.Context, event events.S3Event) error {
	settings, err := devops.LoadSettings("")
	if err != nil {
		return err
	}

	dialect, dsn, err := resolveDSN(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to resolve database: %w", err)
	}
	dm, err := core.New(dialect, dsn, settings.Database.MaxConnections, core.LogLevelError)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dm.Close()

	var opts []attendance.Option
	if slack := communication.ConnectSlack(settings.Slack.Token, communication.SlackOption{
		InfoChannelID:  settings.Slack.InfoChannel,
		ErrorChannelID: settings.Slack.ErrorChannel,
	}); slack != nil {
		opts = append(opts, attendance.WithNotifier(slack))
	}
	rec := attendance.NewReconciler(dm.DB, opts...)

	store, err := filesystem.NewStore(ctx)
	if err != nil {
		return err
	}

	hasError := false
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			key = record.S3.Object.Key
		}
		fmt.Printf("[INFO] importing s3://%s/%s\n", bucket, key)

		if err := importObject(ctx, store, rec, bucket, key); err != nil {
			fmt.Printf("[ERROR] failed to import %s: %v\n", key, err)
			hasError = true
		}
	}

	if hasError {
		return fmt.Errorf("one or more attendance imports failed")
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
