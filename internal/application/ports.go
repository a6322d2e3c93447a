package application

import (
	"context"
	"io"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

// HouseCache keeps listing details by id. Misses report false without error.
type HouseCache interface {
	Get(ctx context.Context, id string) (*entity.House, bool, error)
	Set(ctx context.Context, h *entity.House) error
	Delete(ctx context.Context, id string) error
}

// HouseIndex is the full-text listing index. Search returns matching ids
// best first; the database stays the source of truth for the documents.
type HouseIndex interface {
	Index(ctx context.Context, h *entity.House) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// ImageStore persists an uploaded photo and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, houseID, filename, contentType string, r io.Reader) (string, error)
}

// JobPublisher enqueues a JSON job for a background worker.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
