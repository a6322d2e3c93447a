package repository

import (
	"context"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

// HouseFilter selects a page of active listings. Nil bounds are ignored.
type HouseFilter struct {
	Take         int
	Skip         int
	MinPrice     *int
	MaxPrice     *int
	MinBeds      *int
	MaxBeds      *int
	PropertyType *entity.PropertyType
}

type HouseRepository interface {
	// List returns active listings newest first with images, agent and seller loaded.
	List(ctx context.Context, f HouseFilter) ([]entity.House, error)
	// GetByID loads a listing with relations regardless of its active flag.
	GetByID(ctx context.Context, id string) (*entity.House, error)
	// GetByIDs loads listings with relations, preserving the order of ids.
	// Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]entity.House, error)
	Create(ctx context.Context, h *entity.House) error
	Update(ctx context.Context, id string, patch entity.HousePatch) error
	// AddImage appends img after the current highest order of the house.
	AddImage(ctx context.Context, img *entity.Image) error
}
