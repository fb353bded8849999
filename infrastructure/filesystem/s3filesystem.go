package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store reads spreadsheet uploads from S3.
type Store struct {
	client *s3.Client
}

// NewStore uses the default AWS credential chain.
func NewStore(ctx context.Context) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewStoreFromClient(s3.NewFromConfig(cfg)), nil
}

func NewStoreFromClient(client *s3.Client) *Store {
	return &Store{client: client}
}

func (s *Store) ReadFile(ctx context.Context, bucket string, key string, outStream io.Writer) error {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(outStream, resp.Body); err != nil {
		return fmt.Errorf("failed to copy object %s from bucket %s: %w", key, bucket, err)
	}

	return nil
}

// ReadAll returns the whole object.
func (s *Store) ReadAll(ctx context.Context, bucket string, key string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.ReadFile(ctx, bucket, key, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ListFiles returns the keys under prefix, skipping folder markers.
func (s *Store) ListFiles(ctx context.Context, bucket string, prefix string) ([]string, error) {
	var keys []string

	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	paginator := s3.NewListObjectsV2Paginator(s.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", bucket, err)
		}

		for _, obj := range page.Contents {
			if obj.Key != nil && !strings.HasSuffix(*obj.Key, "/") {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}
