package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/domain/entity"
	repo "github.com/oksasatya/timbr/internal/domain/repository"
)

type SwipeService struct {
	Swipes repo.SwipeRepository
	Logger *logrus.Logger
}

func NewSwipeService(swipes repo.SwipeRepository, logger *logrus.Logger) *SwipeService {
	return &SwipeService{Swipes: swipes, Logger: orDiscard(logger)}
}

type RecordSwipeInput struct {
	HouseID   string
	Direction entity.Direction
	DwellMs   *int
}

// Record stores one swipe decision. The first decision per user and house
// wins; later ones fail with ErrDuplicateSwipe and change nothing.
func (s *SwipeService) Record(ctx context.Context, userID string, in RecordSwipeInput) (*entity.Swipe, error) {
	if in.HouseID == "" || !in.Direction.Valid() || (in.DwellMs != nil && *in.DwellMs < 0) {
		swipesRejected.Add(1)
		return nil, ErrInvalidInput
	}
	sw := &entity.Swipe{
		UserID:    userID,
		HouseID:   in.HouseID,
		Direction: in.Direction,
		DwellMs:   in.DwellMs,
	}
	if err := s.Swipes.Create(ctx, sw); err != nil {
		swipesRejected.Add(1)
		switch {
		case errors.Is(err, repo.ErrConflict):
			return nil, ErrDuplicateSwipe
		case errors.Is(err, repo.ErrReference):
			return nil, ErrHouseNotFound
		case errors.Is(err, repo.ErrMalformed):
			return nil, ErrInvalidInput
		}
		return nil, err
	}
	swipesRecorded.Add(1)
	s.Logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"house_id":  sw.HouseID,
		"direction": sw.Direction,
	}).Debug("swipe recorded")
	return sw, nil
}
