package objectstore

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/timbr/pkg/helpers"
)

// GCSImageStore uploads listing photos to a Cloud Storage bucket.
type GCSImageStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSImageStore(client *storage.Client, bucket string) *GCSImageStore {
	return &GCSImageStore{Client: client, Bucket: bucket}
}

func (s *GCSImageStore) Put(ctx context.Context, houseID, filename, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, s.Client, s.Bucket, helpers.HouseImageObject(houseID, filename), contentType, r)
}
