package entity

import "time"

type PropertyType string

const (
	PropertyHouse    PropertyType = "HOUSE"
	PropertyCondo    PropertyType = "CONDO"
	PropertyTownhome PropertyType = "TOWNHOME"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyHouse, PropertyCondo, PropertyTownhome:
		return true
	}
	return false
}

// House is a listing. Agent and Seller are both optional.
type House struct {
	ID           string
	Title        string
	Description  string
	Price        int
	Bedrooms     int
	Bathrooms    float64
	Sqft         int
	LotSqft      *int
	YearBuilt    *int
	PropertyType PropertyType
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
	IsActive     bool
	AgentID      *string
	SellerID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Loaded relations
	Images []Image
	Agent  *Agent
	Seller *Seller
}

// Image belongs to a house; Order is a display key and may have gaps.
type Image struct {
	ID      string
	HouseID string
	URL     string
	Caption *string
	Order   int
}

// HousePatch holds the listing fields an owner may change after creation.
// Nil means unchanged.
type HousePatch struct {
	Title       *string
	Description *string
	Price       *int
	IsActive    *bool
}

func (p HousePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.IsActive == nil
}
