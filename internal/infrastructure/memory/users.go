package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) CreateAccount(_ context.Context, u *entity.User) (entity.Profile, error) {
	if !u.Role.Valid() {
		return nil, fmt.Errorf("memory: create account: invalid role %q", u.Role)
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[u.Email]; taken {
		return nil, fmt.Errorf("%w: users_email_key", repository.ErrConflict)
	}
	now := s.now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	s.byEmail[u.Email] = u.ID

	switch u.Role {
	case entity.RoleAgent:
		p := entity.AgentProfile{ID: uuid.NewString(), UserID: u.ID, CreatedAt: now, UpdatedAt: now}
		s.agents[p.ID] = p
		return p, nil
	case entity.RoleSeller:
		p := entity.SellerProfile{ID: uuid.NewString(), UserID: u.ID, CreatedAt: now, UpdatedAt: now}
		s.sellers[p.ID] = p
		return p, nil
	default:
		p := entity.BuyerProfile{ID: uuid.NewString(), UserID: u.ID, CreatedAt: now, UpdatedAt: now}
		s.buyers[p.ID] = p
		s.prefs[p.ID] = entity.Preference{ID: uuid.NewString(), BuyerID: p.ID, CreatedAt: now, UpdatedAt: now}
		return p, nil
	}
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

// Delete removes a user and everything it owns, as ON DELETE CASCADE would.
func (r *UserRepository) Delete(_ context.Context, id string) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return
	}
	delete(s.users, id)
	delete(s.byEmail, u.Email)
	for pid, b := range s.buyers {
		if b.UserID == id {
			delete(s.buyers, pid)
			delete(s.prefs, pid)
		}
	}
	for pid, p := range s.sellers {
		if p.UserID == id {
			delete(s.sellers, pid)
		}
	}
	for pid, p := range s.agents {
		if p.UserID == id {
			delete(s.agents, pid)
		}
	}
	for k := range s.swipes {
		if k[0] == id {
			delete(s.swipes, k)
		}
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
