package application

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/domain/entity"
	repo "github.com/oksasatya/timbr/internal/domain/repository"
)

const (
	DefaultTake       = 20
	MaxTake           = 100
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type HouseService struct {
	Houses   repo.HouseRepository
	Profiles repo.ProfileRepository
	Cache    HouseCache // optional
	Index    HouseIndex // optional
	Images   ImageStore // optional
	Logger   *logrus.Logger
}

func NewHouseService(houses repo.HouseRepository, profiles repo.ProfileRepository, cache HouseCache, index HouseIndex, images ImageStore, logger *logrus.Logger) *HouseService {
	return &HouseService{
		Houses:   houses,
		Profiles: profiles,
		Cache:    cache,
		Index:    index,
		Images:   images,
		Logger:   orDiscard(logger),
	}
}

// ListQuery carries the raw feed parameters; nil means not supplied.
type ListQuery struct {
	Take         *int
	Skip         *int
	MinPrice     *int
	MaxPrice     *int
	MinBeds      *int
	MaxBeds      *int
	PropertyType *entity.PropertyType
}

// Filter applies paging defaults and bounds.
func (q ListQuery) Filter() (repo.HouseFilter, error) {
	f := repo.HouseFilter{
		Take:         DefaultTake,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		MinBeds:      q.MinBeds,
		MaxBeds:      q.MaxBeds,
		PropertyType: q.PropertyType,
	}
	if q.Take != nil {
		if *q.Take < 0 {
			return f, ErrInvalidInput
		}
		f.Take = min(*q.Take, MaxTake)
	}
	if q.Skip != nil {
		if *q.Skip < 0 {
			return f, ErrInvalidInput
		}
		f.Skip = *q.Skip
	}
	if q.PropertyType != nil && !q.PropertyType.Valid() {
		return f, ErrInvalidInput
	}
	return f, nil
}

// List returns a page of active listings, newest first.
func (s *HouseService) List(ctx context.Context, q ListQuery) ([]entity.House, error) {
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	if f.Take == 0 {
		return []entity.House{}, nil
	}
	return s.Houses.List(ctx, f)
}

// Get returns a listing by id whether or not it is active.
func (s *HouseService) Get(ctx context.Context, id string) (*entity.House, error) {
	if s.Cache != nil {
		h, ok, err := s.Cache.Get(ctx, id)
		if err != nil {
			s.Logger.WithError(err).WithField("house_id", id).Warn("house cache read failed")
		} else if ok {
			houseCacheHits.Add(1)
			return h, nil
		}
		houseCacheMiss.Add(1)
	}
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, h); err != nil {
			s.Logger.WithError(err).WithField("house_id", id).Warn("house cache write failed")
		}
	}
	return h, nil
}

func (s *HouseService) load(ctx context.Context, id string) (*entity.House, error) {
	h, err := s.Houses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrMalformed) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return h, nil
}

// Search runs a full-text query over the listing index and returns active
// hits in relevance order. Without an index it returns nothing.
func (s *HouseService) Search(ctx context.Context, q string, size int) ([]entity.House, error) {
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []entity.House{}, nil
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	size = min(size, maxSearchSize)

	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, err
	}
	houses, err := s.Houses.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := houses[:0]
	for _, h := range houses {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

type ImageInput struct {
	URL     string
	Caption *string
}

type CreateHouseInput struct {
	Title        string
	Description  string
	Price        int
	Bedrooms     int
	Bathrooms    float64
	Sqft         int
	LotSqft      *int
	YearBuilt    *int
	PropertyType entity.PropertyType
	AddressLine1 string
	City         string
	State        string
	PostalCode   string
	Country      string
	Latitude     *float64
	Longitude    *float64
	HOAMonthly   *int
	HasGarage    bool
	HasPool      bool
	Images       []ImageInput
}

func (in CreateHouseInput) valid() bool {
	return in.Title != "" && in.Price >= 0 && in.Bedrooms >= 0 && in.Bathrooms >= 0 &&
		in.Sqft >= 0 && in.PropertyType.Valid() && in.AddressLine1 != "" &&
		in.City != "" && in.State != "" && in.PostalCode != ""
}

// Create publishes a listing owned by the caller's agent or seller profile.
func (s *HouseService) Create(ctx context.Context, actor *entity.User, in CreateHouseInput) (*entity.House, error) {
	if actor.Role != entity.RoleAgent && actor.Role != entity.RoleSeller {
		return nil, ErrForbidden
	}
	if !in.valid() {
		return nil, ErrInvalidInput
	}
	profile, err := s.Profiles.ProfileForUser(ctx, actor.ID, actor.Role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	h := &entity.House{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Sqft:         in.Sqft,
		LotSqft:      in.LotSqft,
		YearBuilt:    in.YearBuilt,
		PropertyType: in.PropertyType,
		AddressLine1: in.AddressLine1,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		HOAMonthly:   in.HOAMonthly,
		HasGarage:    in.HasGarage,
		HasPool:      in.HasPool,
		IsActive:     true,
	}
	pid := profile.ProfileID()
	if actor.Role == entity.RoleAgent {
		h.AgentID = &pid
	} else {
		h.SellerID = &pid
	}
	for i, img := range in.Images {
		if img.URL == "" {
			return nil, ErrInvalidInput
		}
		h.Images = append(h.Images, entity.Image{URL: img.URL, Caption: img.Caption, Order: i})
	}

	if err := s.Houses.Create(ctx, h); err != nil {
		return nil, err
	}
	return s.refresh(ctx, h.ID)
}

// Update applies an owner's partial edit.
func (s *HouseService) Update(ctx context.Context, actor *entity.User, id string, patch entity.HousePatch) (*entity.House, error) {
	if patch.Empty() || (patch.Price != nil && *patch.Price < 0) || (patch.Title != nil && *patch.Title == "") {
		return nil, ErrInvalidInput
	}
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, actor, h); err != nil {
		return nil, err
	}
	if err := s.Houses.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return s.refresh(ctx, id)
}

// UploadImage stores a photo and appends it after the listing's last image.
func (s *HouseService) UploadImage(ctx context.Context, actor *entity.User, id, filename, contentType string, r io.Reader) (*entity.Image, error) {
	if s.Images == nil {
		return nil, ErrStorageUnavailable
	}
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, actor, h); err != nil {
		return nil, err
	}
	url, err := s.Images.Put(ctx, id, filename, contentType, r)
	if err != nil {
		return nil, err
	}
	img := &entity.Image{HouseID: id, URL: url}
	if err := s.Houses.AddImage(ctx, img); err != nil {
		return nil, err
	}
	if _, err := s.refresh(ctx, id); err != nil {
		s.Logger.WithError(err).WithField("house_id", id).Warn("reload after image upload failed")
	}
	return img, nil
}

func (s *HouseService) authorizeOwner(ctx context.Context, actor *entity.User, h *entity.House) error {
	var owner *string
	switch actor.Role {
	case entity.RoleAgent:
		owner = h.AgentID
	case entity.RoleSeller:
		owner = h.SellerID
	default:
		return ErrForbidden
	}
	if owner == nil {
		return ErrForbidden
	}
	profile, err := s.Profiles.ProfileForUser(ctx, actor.ID, actor.Role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if profile.ProfileID() != *owner {
		return ErrForbidden
	}
	return nil
}

// refresh reloads a mutated listing, evicts its cache entry and re-indexes it.
func (s *HouseService) refresh(ctx context.Context, id string) (*entity.House, error) {
	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("house_id", id).Warn("house cache evict failed")
		}
	}
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Index != nil {
		if err := s.Index.Index(ctx, h); err != nil {
			s.Logger.WithError(err).WithField("house_id", id).Warn("house index failed")
		}
	}
	return h, nil
}
