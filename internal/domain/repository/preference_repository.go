package repository

import (
	"context"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

type PreferenceRepository interface {
	// BuyerIDForUser returns the buyer profile id of userID or ErrNotFound.
	BuyerIDForUser(ctx context.Context, userID string) (string, error)
	GetByBuyerID(ctx context.Context, buyerID string) (*entity.Preference, error)
	// Upsert creates the row when absent, otherwise writes only the fields
	// supplied in patch.
	Upsert(ctx context.Context, buyerID string, patch entity.PreferencePatch) (*entity.Preference, error)
}
