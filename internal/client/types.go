package client

import (
	"fmt"
	"time"
)

type Direction string

const (
	Left  Direction = "LEFT"
	Right Direction = "RIGHT"
)

type User struct {
	ID          string `json:"id" yaml:"id"`
	Email       string `json:"email" yaml:"email"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Role        string `json:"role" yaml:"role"`
}

type Image struct {
	ID      string  `json:"id"`
	URL     string  `json:"url"`
	Caption *string `json:"caption"`
	Order   int     `json:"order"`
}

type AgentSummary struct {
	ID        string   `json:"id"`
	Brokerage *string  `json:"brokerage"`
	Rating    *float64 `json:"rating"`
	User      User     `json:"user"`
}

type House struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        int           `json:"price"`
	Bedrooms     int           `json:"bedrooms"`
	Bathrooms    float64       `json:"bathrooms"`
	Sqft         int           `json:"sqft"`
	PropertyType string        `json:"propertyType"`
	AddressLine1 string        `json:"addressLine1"`
	City         string        `json:"city"`
	State        string        `json:"state"`
	PostalCode   string        `json:"postalCode"`
	HasGarage    bool          `json:"hasGarage"`
	HasPool      bool          `json:"hasPool"`
	IsActive     bool          `json:"isActive"`
	Images       []Image       `json:"images"`
	Agent        *AgentSummary `json:"agent"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type Swipe struct {
	ID        string    `json:"id"`
	HouseID   string    `json:"houseId"`
	Direction Direction `json:"direction"`
	DwellMs   *int      `json:"dwellMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Preferences is both the read model and the PUT body; nil fields are
// omitted on write so the server leaves them untouched.
type Preferences struct {
	MinPrice        *int      `json:"minPrice,omitempty" yaml:"minPrice,omitempty"`
	MaxPrice        *int      `json:"maxPrice,omitempty" yaml:"maxPrice,omitempty"`
	MinBeds         *int      `json:"minBeds,omitempty" yaml:"minBeds,omitempty"`
	MaxBeds         *int      `json:"maxBeds,omitempty" yaml:"maxBeds,omitempty"`
	MinBaths        *float64  `json:"minBaths,omitempty" yaml:"minBaths,omitempty"`
	MaxBaths        *float64  `json:"maxBaths,omitempty" yaml:"maxBaths,omitempty"`
	PropertyTypes   *[]string `json:"propertyTypes,omitempty" yaml:"propertyTypes,omitempty"`
	Neighborhoods   *[]string `json:"neighborhoods,omitempty" yaml:"neighborhoods,omitempty"`
	MinSqft         *int      `json:"minSqft,omitempty" yaml:"minSqft,omitempty"`
	MaxSqft         *int      `json:"maxSqft,omitempty" yaml:"maxSqft,omitempty"`
	MinLotSqft      *int      `json:"minLotSqft,omitempty" yaml:"minLotSqft,omitempty"`
	MaxLotSqft      *int      `json:"maxLotSqft,omitempty" yaml:"maxLotSqft,omitempty"`
	YearBuiltMin    *int      `json:"yearBuiltMin,omitempty" yaml:"yearBuiltMin,omitempty"`
	YearBuiltMax    *int      `json:"yearBuiltMax,omitempty" yaml:"yearBuiltMax,omitempty"`
	HOAMaxMonthly   *int      `json:"hoaMaxMonthly,omitempty" yaml:"hoaMaxMonthly,omitempty"`
	HasGarage       *bool     `json:"hasGarage,omitempty" yaml:"hasGarage,omitempty"`
	HasPool         *bool     `json:"hasPool,omitempty" yaml:"hasPool,omitempty"`
	AllowFixerUpper *bool     `json:"allowFixerUpper,omitempty" yaml:"allowFixerUpper,omitempty"`
}

type AgentDetail struct {
	AgentSummary
	Bio      *string `json:"bio"`
	Website  *string `json:"website"`
	Listings []House `json:"listings"`
}

// APIError is a non-2xx response with the server's {"error": ...} message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("timbr api: %d %s", e.Status, e.Message)
}
