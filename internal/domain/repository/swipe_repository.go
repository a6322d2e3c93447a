package repository

import (
	"context"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

type SwipeRepository interface {
	// Create inserts s. A second swipe for the same user and house returns
	// ErrConflict and leaves the stored one unchanged; an unknown house
	// returns ErrReference.
	Create(ctx context.Context, s *entity.Swipe) error
}
