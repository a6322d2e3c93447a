package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/timbr/internal/domain/entity"
	"github.com/oksasatya/timbr/internal/domain/repository"
)

type HouseRepository struct{ s *Store }

func matches(h entity.House, f repository.HouseFilter) bool {
	switch {
	case !h.IsActive:
		return false
	case f.MinPrice != nil && h.Price < *f.MinPrice:
		return false
	case f.MaxPrice != nil && h.Price > *f.MaxPrice:
		return false
	case f.MinBeds != nil && h.Bedrooms < *f.MinBeds:
		return false
	case f.MaxBeds != nil && h.Bedrooms > *f.MaxBeds:
		return false
	case f.PropertyType != nil && h.PropertyType != *f.PropertyType:
		return false
	}
	return true
}

func (r *HouseRepository) List(_ context.Context, f repository.HouseFilter) ([]entity.House, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entity.House, 0, len(s.houses))
	for _, h := range s.houses {
		if matches(h, f) {
			all = append(all, h)
		}
	}
	newest(all)

	out := []entity.House{}
	if f.Skip >= len(all) {
		return out, nil
	}
	end := min(f.Skip+f.Take, len(all))
	for _, h := range all[f.Skip:end] {
		out = append(out, s.hydrate(h))
	}
	return out, nil
}

func (r *HouseRepository) GetByID(_ context.Context, id string) (*entity.House, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	h, ok := r.s.houses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	h = r.s.hydrate(h)
	return &h, nil
}

func (r *HouseRepository) GetByIDs(_ context.Context, ids []string) ([]entity.House, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.House{}
	for _, id := range ids {
		if h, ok := r.s.houses[id]; ok {
			out = append(out, r.s.hydrate(h))
		}
	}
	return out, nil
}

func (r *HouseRepository) Create(_ context.Context, h *entity.House) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.AgentID != nil {
		if _, ok := s.agents[*h.AgentID]; !ok {
			return fmt.Errorf("%w: houses_agent_id_fkey", repository.ErrReference)
		}
	}
	if h.SellerID != nil {
		if _, ok := s.sellers[*h.SellerID]; !ok {
			return fmt.Errorf("%w: houses_seller_id_fkey", repository.ErrReference)
		}
	}
	now := s.now()
	h.ID = uuid.NewString()
	if h.Country == "" {
		h.Country = "US"
	}
	h.CreatedAt, h.UpdatedAt = now, now

	imgs := make([]entity.Image, len(h.Images))
	for i := range h.Images {
		h.Images[i].ID = uuid.NewString()
		h.Images[i].HouseID = h.ID
		imgs[i] = h.Images[i]
	}
	stored := *h
	stored.Images, stored.Agent, stored.Seller = nil, nil, nil
	s.houses[h.ID] = stored
	s.images[h.ID] = imgs
	return nil
}

// SetCreatedAt backdates a listing.
func (r *HouseRepository) SetCreatedAt(id string, t time.Time) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if h, ok := r.s.houses[id]; ok {
		h.CreatedAt = t
		r.s.houses[id] = h
	}
}

func (r *HouseRepository) Update(_ context.Context, id string, patch entity.HousePatch) error {
	if err := checkID(id); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.houses[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Title != nil {
		h.Title = *patch.Title
	}
	if patch.Description != nil {
		h.Description = *patch.Description
	}
	if patch.Price != nil {
		h.Price = *patch.Price
	}
	if patch.IsActive != nil {
		h.IsActive = *patch.IsActive
	}
	h.UpdatedAt = s.now()
	s.houses[id] = h
	return nil
}

func (r *HouseRepository) AddImage(_ context.Context, img *entity.Image) error {
	if err := checkID(img.HouseID); err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.houses[img.HouseID]; !ok {
		return fmt.Errorf("%w: house_images_house_id_fkey", repository.ErrReference)
	}
	next := 0
	for _, cur := range s.images[img.HouseID] {
		if cur.Order >= next {
			next = cur.Order + 1
		}
	}
	img.ID = uuid.NewString()
	img.Order = next
	s.images[img.HouseID] = append(s.images[img.HouseID], *img)
	return nil
}

var _ repository.HouseRepository = (*HouseRepository)(nil)
