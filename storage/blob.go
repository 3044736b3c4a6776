package storage

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlob opens a gocloud bucket (file:///var/disputes, mem://) and serves stored objects
// under publicBaseURL
func NewBlob(ctx context.Context, bucketURL, publicBaseURL string) (Storage, error) {
	if bucketURL == "" {
		return nil, errors.New("BLOB_BUCKET_URL is not set")
	}
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}
	return &blobStorage{bucket: bucket, publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}, nil
}

func (s *blobStorage) Put(ctx context.Context, data []byte, fileName, mimeType string) (string, error) {
	key := objectKey(fileName)
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: mimeType,
		Metadata:    map[string]string{"filename": fileName},
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}
	return s.publicBaseURL + "/" + key, nil
}
