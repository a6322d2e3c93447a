package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/domain/entity"
	repo "github.com/oksasatya/timbr/internal/domain/repository"
)

// PreferenceService stores buyer criteria. The criteria are not applied to
// the listing feed.
type PreferenceService struct {
	Preferences repo.PreferenceRepository
	Logger      *logrus.Logger
}

func NewPreferenceService(prefs repo.PreferenceRepository, logger *logrus.Logger) *PreferenceService {
	return &PreferenceService{Preferences: prefs, Logger: orDiscard(logger)}
}

func (s *PreferenceService) buyerID(ctx context.Context, userID string) (string, error) {
	id, err := s.Preferences.BuyerIDForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrBuyerProfileNotFound
		}
		return "", err
	}
	return id, nil
}

// Get returns the caller's preference row, or nil when the buyer has none.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*entity.Preference, error) {
	buyerID, err := s.buyerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Preferences.GetByBuyerID(ctx, buyerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// Put writes only the supplied fields, creating the row if needed.
func (s *PreferenceService) Put(ctx context.Context, userID string, patch entity.PreferencePatch) (*entity.Preference, error) {
	if patch.PropertyTypes != nil {
		for _, t := range *patch.PropertyTypes {
			if !entity.PropertyType(t).Valid() {
				return nil, ErrInvalidInput
			}
		}
	}
	buyerID, err := s.buyerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Preferences.Upsert(ctx, buyerID, patch)
}
