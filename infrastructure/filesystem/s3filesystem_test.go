package filesystem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBody = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>uploads</Name>
  <Prefix>attendance/</Prefix>
  <KeyCount>2</KeyCount>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>attendance/</Key></Contents>
  <Contents><Key>attendance/november.xlsx</Key></Contents>
</ListBucketResult>`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Query().Get("list-type") == "2":
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(listBody))
		case r.URL.Path == "/uploads/attendance/november.xlsx":
			_, _ = w.Write([]byte("workbook-bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<Error><Code>NoSuchKey</Code></Error>`))
		}
	}))
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},
	})
	return NewStoreFromClient(client)
}

func TestStoreReadAll(t *testing.T) {
	store := newTestStore(t)

	data, err := store.ReadAll(context.Background(), "uploads", "attendance/november.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "workbook-bytes", string(data))

	_, err = store.ReadAll(context.Background(), "uploads", "attendance/missing.xlsx")
	assert.Error(t, err)
}

func TestStoreListFiles(t *testing.T) {
	store := newTestStore(t)

	keys, err := store.ListFiles(context.Background(), "uploads", "attendance/")
	require.NoError(t, err)
	assert.Equal(t, []string{"attendance/november.xlsx"}, keys)
}
