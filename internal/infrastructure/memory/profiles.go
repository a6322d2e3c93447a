package memory

import (
	"context"
	"fmt"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type ProfileRepository struct{ s *Store }

func (r *ProfileRepository) ProfileForUser(_ context.Context, userID string, role entity.Role) (entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	switch role {
	case entity.RoleAgent:
		for _, p := range r.s.agents {
			if p.UserID == userID {
				return p, nil
			}
		}
	case entity.RoleSeller:
		for _, p := range r.s.sellers {
			if p.UserID == userID {
				return p, nil
			}
		}
	case entity.RoleBuyer:
		for _, p := range r.s.buyers {
			if p.UserID == userID {
				return p, nil
			}
		}
	default:
		return nil, fmt.Errorf("memory: profile for user: invalid role %q", role)
	}
	return nil, repository.ErrNotFound
}

func (r *ProfileRepository) AgentDetail(_ context.Context, agentID string) (*entity.AgentDetail, error) {
	if err := checkID(agentID); err != nil {
		return nil, err
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agents[agentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d := &entity.AgentDetail{
		Agent:    entity.Agent{Profile: a, User: s.publicUser(a.UserID)},
		Listings: []entity.House{},
	}
	for _, h := range s.houses {
		if h.AgentID != nil && *h.AgentID == agentID {
			d.Listings = append(d.Listings, s.hydrate(h))
		}
	}
	newest(d.Listings)
	return d, nil
}

// UpdateAgent overwrites the public metadata of an agent profile.
func (r *ProfileRepository) UpdateAgent(_ context.Context, p entity.AgentProfile) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.agents[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.UserID, p.CreatedAt, p.UpdatedAt = cur.UserID, cur.CreatedAt, s.now()
	s.agents[p.ID] = p
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
