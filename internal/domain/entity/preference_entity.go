package entity

import "time"

// PreferenceCriteria is a buyer's declared search criteria. Every field is
// optional and nil means "no constraint".
type PreferenceCriteria struct {
	MinPrice        *int
	MaxPrice        *int
	MinBeds         *int
	MaxBeds         *int
	MinBaths        *float64
	MaxBaths        *float64
	PropertyTypes   []string
	Neighborhoods   []string
	MinSqft         *int
	MaxSqft         *int
	MinLotSqft      *int
	MaxLotSqft      *int
	YearBuiltMin    *int
	YearBuiltMax    *int
	HOAMaxMonthly   *int
	HasGarage       *bool
	HasPool         *bool
	AllowFixerUpper *bool
}

type Preference struct {
	ID      string
	BuyerID string
	PreferenceCriteria
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PreferencePatch is a partial update. Nil fields are left untouched;
// a non-nil pointer to an empty slice clears a set-valued filter.
type PreferencePatch struct {
	MinPrice        *int
	MaxPrice        *int
	MinBeds         *int
	MaxBeds         *int
	MinBaths        *float64
	MaxBaths        *float64
	PropertyTypes   *[]string
	Neighborhoods   *[]string
	MinSqft         *int
	MaxSqft         *int
	MinLotSqft      *int
	MaxLotSqft      *int
	YearBuiltMin    *int
	YearBuiltMax    *int
	HOAMaxMonthly   *int
	HasGarage       *bool
	HasPool         *bool
	AllowFixerUpper *bool
}

// Apply writes every supplied field of p onto c.
func (p PreferencePatch) Apply(c *PreferenceCriteria) {
	setInt := func(dst **int, v *int) {
		if v != nil {
			x := *v
			*dst = &x
		}
	}
	setInt(&c.MinPrice, p.MinPrice)
	setInt(&c.MaxPrice, p.MaxPrice)
	setInt(&c.MinBeds, p.MinBeds)
	setInt(&c.MaxBeds, p.MaxBeds)
	setInt(&c.MinSqft, p.MinSqft)
	setInt(&c.MaxSqft, p.MaxSqft)
	setInt(&c.MinLotSqft, p.MinLotSqft)
	setInt(&c.MaxLotSqft, p.MaxLotSqft)
	setInt(&c.YearBuiltMin, p.YearBuiltMin)
	setInt(&c.YearBuiltMax, p.YearBuiltMax)
	setInt(&c.HOAMaxMonthly, p.HOAMaxMonthly)
	if p.MinBaths != nil {
		v := *p.MinBaths
		c.MinBaths = &v
	}
	if p.MaxBaths != nil {
		v := *p.MaxBaths
		c.MaxBaths = &v
	}
	if p.PropertyTypes != nil {
		c.PropertyTypes = append([]string{}, (*p.PropertyTypes)...)
	}
	if p.Neighborhoods != nil {
		c.Neighborhoods = append([]string{}, (*p.Neighborhoods)...)
	}
	if p.HasGarage != nil {
		v := *p.HasGarage
		c.HasGarage = &v
	}
	if p.HasPool != nil {
		v := *p.HasPool
		c.HasPool = &v
	}
	if p.AllowFixerUpper != nil {
		v := *p.AllowFixerUpper
		c.AllowFixerUpper = &v
	}
}
