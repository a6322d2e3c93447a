// Package memory is an in-process implementation of the repository
// interfaces. It mirrors the Postgres constraints (unique email, one swipe
// per user and house, foreign keys, uuid syntax) and backs tests and local demos.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type Store struct {
	mu sync.RWMutex

	users   map[string]entity.User
	byEmail map[string]string

	buyers  map[string]entity.BuyerProfile
	sellers map[string]entity.SellerProfile
	agents  map[string]entity.AgentProfile
	prefs   map[string]entity.Preference // keyed by buyer id

	houses map[string]entity.House
	images map[string][]entity.Image // keyed by house id
	swipes map[[2]string]entity.Swipe

	base time.Time
	tick int64
}

func NewStore() *Store {
	return &Store{
		users:   map[string]entity.User{},
		byEmail: map[string]string{},
		buyers:  map[string]entity.BuyerProfile{},
		sellers: map[string]entity.SellerProfile{},
		agents:  map[string]entity.AgentProfile{},
		prefs:   map[string]entity.Preference{},
		houses:  map[string]entity.House{},
		images:  map[string][]entity.Image{},
		swipes:  map[[2]string]entity.Swipe{},
		base:    time.Now().UTC().Truncate(time.Second),
	}
}

// now is strictly increasing so creation order is always observable.
func (s *Store) now() time.Time {
	s.tick++
	return s.base.Add(time.Duration(s.tick) * time.Millisecond)
}

func (s *Store) Users() *UserRepository             { return &UserRepository{s} }
func (s *Store) Profiles() *ProfileRepository       { return &ProfileRepository{s} }
func (s *Store) Houses() *HouseRepository           { return &HouseRepository{s} }
func (s *Store) Swipes() *SwipeRepository           { return &SwipeRepository{s} }
func (s *Store) Preferences() *PreferenceRepository { return &PreferenceRepository{s} }

// SwipeFor returns the stored swipe of a user on a house.
func (s *Store) SwipeFor(userID, houseID string) (entity.Swipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sw, ok := s.swipes[[2]string{userID, houseID}]
	return sw, ok
}

func (s *Store) SwipeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.swipes)
}

// PreferenceCount returns how many preference rows belong to buyerID.
func (s *Store) PreferenceCount(buyerID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.prefs[buyerID]; ok {
		return 1
	}
	return 0
}

// BuyerProfilesFor counts buyer profiles owned by userID.
func (s *Store) BuyerProfilesFor(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.buyers {
		if b.UserID == userID {
			n++
		}
	}
	return n
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrMalformed
	}
	return nil
}

// hydrate attaches images, agent and seller to a stored house. Callers hold mu.
func (s *Store) hydrate(h entity.House) entity.House {
	imgs := append([]entity.Image{}, s.images[h.ID]...)
	sort.SliceStable(imgs, func(i, j int) bool {
		if imgs[i].Order != imgs[j].Order {
			return imgs[i].Order < imgs[j].Order
		}
		return imgs[i].ID < imgs[j].ID
	})
	h.Images = imgs
	h.Agent, h.Seller = nil, nil
	if h.AgentID != nil {
		if a, ok := s.agents[*h.AgentID]; ok {
			h.Agent = &entity.Agent{Profile: a, User: s.publicUser(a.UserID)}
		}
	}
	if h.SellerID != nil {
		if sp, ok := s.sellers[*h.SellerID]; ok {
			h.Seller = &entity.Seller{Profile: sp, User: s.publicUser(sp.UserID)}
		}
	}
	return h
}

func (s *Store) publicUser(id string) entity.User {
	u := s.users[id]
	u.PasswordHash = ""
	return u
}

// newest orders houses by created_at then id, both descending.
func newest(hs []entity.House) {
	sort.Slice(hs, func(i, j int) bool {
		if !hs[i].CreatedAt.Equal(hs[j].CreatedAt) {
			return hs[i].CreatedAt.After(hs[j].CreatedAt)
		}
		return hs[i].ID > hs[j].ID
	})
}
