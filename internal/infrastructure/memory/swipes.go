package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type SwipeRepository struct{ s *Store }

func (r *SwipeRepository) Create(_ context.Context, sw *entity.Swipe) error {
	if err := checkID(sw.UserID); err != nil {
		return err
	}
	if err := checkID(sw.HouseID); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[sw.UserID]; !ok {
		return fmt.Errorf("%w: swipes_user_id_fkey", repository.ErrReference)
	}
	if _, ok := s.houses[sw.HouseID]; !ok {
		return fmt.Errorf("%w: swipes_house_id_fkey", repository.ErrReference)
	}
	key := [2]string{sw.UserID, sw.HouseID}
	if _, dup := s.swipes[key]; dup {
		return fmt.Errorf("%w: swipes_user_house_key", repository.ErrConflict)
	}
	sw.ID = uuid.NewString()
	sw.CreatedAt = s.now()
	s.swipes[key] = *sw
	return nil
}

var _ repository.SwipeRepository = (*SwipeRepository)(nil)
