package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type PreferenceRepository struct{ s *Store }

func (r *PreferenceRepository) BuyerIDForUser(_ context.Context, userID string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, b := range r.s.buyers {
		if b.UserID == userID {
			return id, nil
		}
	}
	return "", repository.ErrNotFound
}

func (r *PreferenceRepository) GetByBuyerID(_ context.Context, buyerID string) (*entity.Preference, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.prefs[buyerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *PreferenceRepository) Upsert(_ context.Context, buyerID string, patch entity.PreferencePatch) (*entity.Preference, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buyers[buyerID]; !ok {
		return nil, repository.ErrReference
	}
	now := s.now()
	p, ok := s.prefs[buyerID]
	if !ok {
		p = entity.Preference{ID: uuid.NewString(), BuyerID: buyerID, CreatedAt: now}
	}
	patch.Apply(&p.PreferenceCriteria)
	p.UpdatedAt = now
	s.prefs[buyerID] = p
	return &p, nil
}

// DeletePreference drops a buyer's row.
func (r *PreferenceRepository) DeletePreference(buyerID string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.prefs, buyerID)
}

var _ repository.PreferenceRepository = (*PreferenceRepository)(nil)
