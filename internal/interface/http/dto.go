package handlers

import (
	"time"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

// Wire shapes. Field names are camelCase and password hashes never leave
// the server.

type userDTO struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Role        entity.Role `json:"role"`
	Phone       *string     `json:"phone"`
	AvatarURL   *string     `json:"avatarUrl"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// authUserDTO is the compact identity returned by signup and login.
type authUserDTO struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	Role        entity.Role `json:"role"`
}

type imageDTO struct {
	ID      string  `json:"id"`
	HouseID string  `json:"houseId"`
	URL     string  `json:"url"`
	Caption *string `json:"caption"`
	Order   int     `json:"order"`
}

type agentDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	LicenseNo *string   `json:"licenseNo"`
	Bio       *string   `json:"bio"`
	Website   *string   `json:"website"`
	Brokerage *string   `json:"brokerage"`
	Rating    *float64  `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      userDTO   `json:"user"`
}

type sellerDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      userDTO   `json:"user"`
}

// listingDTO is a house with its images only.
type listingDTO struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Price        int                 `json:"price"`
	Bedrooms     int                 `json:"bedrooms"`
	Bathrooms    float64             `json:"bathrooms"`
	Sqft         int                 `json:"sqft"`
	LotSqft      *int                `json:"lotSqft"`
	YearBuilt    *int                `json:"yearBuilt"`
	PropertyType entity.PropertyType `json:"propertyType"`
	AddressLine1 string              `json:"addressLine1"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	PostalCode   string              `json:"postalCode"`
	Country      string              `json:"country"`
	Latitude     *float64            `json:"latitude"`
	Longitude    *float64            `json:"longitude"`
	HOAMonthly   *int                `json:"hoaMonthly"`
	HasGarage    bool                `json:"hasGarage"`
	HasPool      bool                `json:"hasPool"`
	IsActive     bool                `json:"isActive"`
	AgentID      *string             `json:"agentId"`
	SellerID     *string             `json:"sellerId"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Images       []imageDTO          `json:"images"`
}

type houseDTO struct {
	listingDTO
	Agent  *agentDTO  `json:"agent"`
	Seller *sellerDTO `json:"seller"`
}

type agentDetailDTO struct {
	agentDTO
	Listings []listingDTO `json:"listings"`
}

type swipeDTO struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	HouseID   string           `json:"houseId"`
	Direction entity.Direction `json:"direction"`
	DwellMs   *int             `json:"dwellMs"`
	CreatedAt time.Time        `json:"createdAt"`
}

type preferenceDTO struct {
	ID              string    `json:"id"`
	BuyerID         string    `json:"buyerId"`
	MinPrice        *int      `json:"minPrice"`
	MaxPrice        *int      `json:"maxPrice"`
	MinBeds         *int      `json:"minBeds"`
	MaxBeds         *int      `json:"maxBeds"`
	MinBaths        *float64  `json:"minBaths"`
	MaxBaths        *float64  `json:"maxBaths"`
	PropertyTypes   []string  `json:"propertyTypes"`
	Neighborhoods   []string  `json:"neighborhoods"`
	MinSqft         *int      `json:"minSqft"`
	MaxSqft         *int      `json:"maxSqft"`
	MinLotSqft      *int      `json:"minLotSqft"`
	MaxLotSqft      *int      `json:"maxLotSqft"`
	YearBuiltMin    *int      `json:"yearBuiltMin"`
	YearBuiltMax    *int      `json:"yearBuiltMax"`
	HOAMaxMonthly   *int      `json:"hoaMaxMonthly"`
	HasGarage       *bool     `json:"hasGarage"`
	HasPool         *bool     `json:"hasPool"`
	AllowFixerUpper *bool     `json:"allowFixerUpper"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toUser(u entity.User) userDTO {
	return userDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toAuthUser(u *entity.User) authUserDTO {
	return authUserDTO{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role}
}

func toAgent(a entity.Agent) agentDTO {
	p := a.Profile
	return agentDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		LicenseNo: p.LicenseNo,
		Bio:       p.Bio,
		Website:   p.Website,
		Brokerage: p.Brokerage,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		User:      toUser(a.User),
	}
}

func toImages(imgs []entity.Image) []imageDTO {
	out := make([]imageDTO, len(imgs))
	for i, img := range imgs {
		out[i] = toImage(img)
	}
	return out
}

func toImage(img entity.Image) imageDTO {
	return imageDTO{ID: img.ID, HouseID: img.HouseID, URL: img.URL, Caption: img.Caption, Order: img.Order}
}

func toListing(h entity.House) listingDTO {
	return listingDTO{
		ID:           h.ID,
		Title:        h.Title,
		Description:  h.Description,
		Price:        h.Price,
		Bedrooms:     h.Bedrooms,
		Bathrooms:    h.Bathrooms,
		Sqft:         h.Sqft,
		LotSqft:      h.LotSqft,
		YearBuilt:    h.YearBuilt,
		PropertyType: h.PropertyType,
		AddressLine1: h.AddressLine1,
		City:         h.City,
		State:        h.State,
		PostalCode:   h.PostalCode,
		Country:      h.Country,
		Latitude:     h.Latitude,
		Longitude:    h.Longitude,
		HOAMonthly:   h.HOAMonthly,
		HasGarage:    h.HasGarage,
		HasPool:      h.HasPool,
		IsActive:     h.IsActive,
		AgentID:      h.AgentID,
		SellerID:     h.SellerID,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
		Images:       toImages(h.Images),
	}
}

func toHouse(h entity.House) houseDTO {
	d := houseDTO{listingDTO: toListing(h)}
	if h.Agent != nil {
		a := toAgent(*h.Agent)
		d.Agent = &a
	}
	if h.Seller != nil {
		d.Seller = &sellerDTO{
			ID:        h.Seller.Profile.ID,
			UserID:    h.Seller.Profile.UserID,
			CreatedAt: h.Seller.Profile.CreatedAt,
			UpdatedAt: h.Seller.Profile.UpdatedAt,
			User:      toUser(h.Seller.User),
		}
	}
	return d
}

func toHouses(hs []entity.House) []houseDTO {
	out := make([]houseDTO, len(hs))
	for i, h := range hs {
		out[i] = toHouse(h)
	}
	return out
}

func toAgentDetail(d *entity.AgentDetail) agentDetailDTO {
	out := agentDetailDTO{agentDTO: toAgent(d.Agent), Listings: make([]listingDTO, len(d.Listings))}
	for i, h := range d.Listings {
		out.Listings[i] = toListing(h)
	}
	return out
}

func toSwipe(s *entity.Swipe) swipeDTO {
	return swipeDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		HouseID:   s.HouseID,
		Direction: s.Direction,
		DwellMs:   s.DwellMs,
		CreatedAt: s.CreatedAt,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toPreference(p *entity.Preference) *preferenceDTO {
	if p == nil {
		return nil
	}
	c := p.PreferenceCriteria
	return &preferenceDTO{
		ID:              p.ID,
		BuyerID:         p.BuyerID,
		MinPrice:        c.MinPrice,
		MaxPrice:        c.MaxPrice,
		MinBeds:         c.MinBeds,
		MaxBeds:         c.MaxBeds,
		MinBaths:        c.MinBaths,
		MaxBaths:        c.MaxBaths,
		PropertyTypes:   orEmpty(c.PropertyTypes),
		Neighborhoods:   orEmpty(c.Neighborhoods),
		MinSqft:         c.MinSqft,
		MaxSqft:         c.MaxSqft,
		MinLotSqft:      c.MinLotSqft,
		MaxLotSqft:      c.MaxLotSqft,
		YearBuiltMin:    c.YearBuiltMin,
		YearBuiltMax:    c.YearBuiltMax,
		HOAMaxMonthly:   c.HOAMaxMonthly,
		HasGarage:       c.HasGarage,
		HasPool:         c.HasPool,
		AllowFixerUpper: c.AllowFixerUpper,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
