// Package storage persists uploaded letters and shared documents and hands back a
// retrievable URL. Drivers are selected with STORAGE_DRIVER.
package storage

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/landauthority/dispute-api/config"
	"github.com/landauthority/dispute-api/models"
)

// File is an upload received from a client
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Storage stores one file and returns its URL
type Storage interface {
	Put(ctx context.Context, data []byte, fileName, mimeType string) (string, error)
}

// New opens the driver configured for conf
func New(ctx context.Context, conf *config.Config) (Storage, error) {
	switch conf.StorageDriver {
	case "cloudinary":
		return NewCloudinary(conf.CloudinaryURL, conf.CloudinaryFolder)
	case "blob":
		return NewBlob(ctx, conf.BlobBucketURL, conf.BlobPublicBaseURL)
	default:
		return nil, errors.Newf("unknown storage driver %q", conf.StorageDriver)
	}
}

// PutAll uploads every file concurrently. Either every upload succeeds and the stored
// documents are returned in input order, or the first failure is returned wrapped as
// an upstream failure and nothing should be recorded by the caller.
func PutAll(ctx context.Context, s Storage, files []File, now time.Time) ([]models.StoredDocument, error) {
	docs := make([]models.StoredDocument, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := s.Put(gctx, f.Data, f.Name, f.MimeType)
			if err != nil {
				return errors.Wrapf(err, "failed to store %s", f.Name)
			}
			docs[i] = models.StoredDocument{URL: url, Name: f.Name, UploadedAt: now}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Mark(err, models.UpstreamFailureError)
	}
	return docs, nil
}

// objectKey builds a collision free key that keeps the original extension
func objectKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return time.Now().UTC().Format("2006/01/02") + "/" + uuid.NewString() + ext
}
