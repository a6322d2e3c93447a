package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

var (
	firstNames = []string{"Ava", "Liam", "Noah", "Emma", "Mia", "Lucas", "Zoe", "Ethan", "Isla", "Mateo", "Nora", "Owen", "Ruby", "Elias", "Maya", "Jonah"}
	lastNames  = []string{"Nguyen", "Garcia", "Smith", "Okafor", "Kowalski", "Haddad", "Larsen", "Moreau", "Tanaka", "Rossi", "Silva", "Kim", "Patel", "Walsh"}
	brokerages = []string{"Compass", "Redfin", "Keller Williams", "Coldwell Banker", "Sotheby's"}
	cities     = []string{"Austin", "Denver", "Portland", "Raleigh", "Boise", "Tucson", "Madison", "Asheville", "Tampa", "Spokane", "Richmond", "Omaha"}
	states     = []string{"TX", "CO", "OR", "NC", "ID", "AZ", "WI", "FL", "WA", "VA", "NE"}
	streets    = []string{"Oak", "Maple", "Cedar", "Pine", "Elm", "Willow", "Lakeview", "Hillcrest", "Sunset", "Park"}
	suffixes   = []string{"St", "Ave", "Rd", "Ln", "Dr", "Ct"}
	blurbs     = []string{
		"Sun-filled rooms and an open floor plan.",
		"Walking distance to cafes, parks and schools.",
		"Recently renovated with new flooring throughout.",
		"Quiet street with mature trees.",
		"Large windows with mountain views.",
		"Original details kept alongside modern updates.",
		"Close to transit and the downtown core.",
	}
	fillerRooms = []string{"living-room", "kitchen", "bedroom", "bathroom", "dining-room", "home-office", "family-room", "master-bedroom", "guest-room"}
)

func pick[T any](r *rand.Rand, xs []T) T { return xs[r.IntN(len(xs))] }

func between(r *rand.Rand, lo, hi int) int { return lo + r.IntN(hi-lo+1) }

// maybe returns v with probability p, otherwise nil.
func maybe[T any](r *rand.Rand, p float64, v func() T) *T {
	if r.Float64() >= p {
		return nil
	}
	x := v()
	return &x
}

func fullName(r *rand.Rand) string { return pick(r, firstNames) + " " + pick(r, lastNames) }

func phone(r *rand.Rand) *string {
	p := fmt.Sprintf("+1%03d%03d%04d", between(r, 201, 989), between(r, 200, 999), r.IntN(10000))
	return &p
}

func newUser(r *rand.Rand, role entity.Role, i int, hash string) entity.User {
	avatar := fmt.Sprintf("https://avatars.githubusercontent.com/u/%d", between(r, 1000, 99999999))
	return entity.User{
		Email:        fmt.Sprintf("%s%d@example.com", strings.ToLower(string(role)), i),
		PasswordHash: hash,
		DisplayName:  fullName(r),
		Role:         role,
		Phone:        phone(r),
		AvatarURL:    &avatar,
	}
}

func agentDetails(r *rand.Rand, p *entity.AgentProfile) {
	const alnum = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"
	var lic strings.Builder
	for range 10 {
		lic.WriteByte(alnum[r.IntN(len(alnum))])
	}
	license := lic.String()
	bio := strings.Join([]string{pick(r, blurbs), pick(r, blurbs)}, " ")
	website := fmt.Sprintf("https://%s.example.com", strings.ToLower(license))
	brokerage := pick(r, brokerages)
	rating := float64(35+r.IntN(16)) / 10 // 3.5 to 5.0
	p.LicenseNo, p.Bio, p.Website, p.Brokerage, p.Rating = &license, &bio, &website, &brokerage, &rating
}

func buyerPreferences(r *rand.Rand) entity.PreferencePatch {
	i := func(v int) *int { return &v }
	f := func(v float64) *float64 { return &v }
	b := func() *bool { v := r.IntN(2) == 0; return &v }
	types := []string{string(entity.PropertyHouse), string(entity.PropertyCondo), string(entity.PropertyTownhome)}
	hoods := []string{pick(r, cities), pick(r, cities)}
	return entity.PreferencePatch{
		MinPrice: i(250_000), MaxPrice: i(1_500_000),
		MinBeds: i(2), MaxBeds: i(5),
		MinBaths: f(1), MaxBaths: f(4),
		PropertyTypes: &types, Neighborhoods: &hoods,
		MinSqft: i(900), MaxSqft: i(4000),
		MinLotSqft: i(1000), MaxLotSqft: i(20000),
		YearBuiltMin: i(1950), YearBuiltMax: i(2024),
		HOAMaxMonthly:   i(600),
		HasGarage:       b(),
		HasPool:         b(),
		AllowFixerUpper: b(),
	}
}

// newHouse builds a random active listing without owners.
func newHouse(r *rand.Rand) entity.House {
	types := []entity.PropertyType{entity.PropertyHouse, entity.PropertyCondo, entity.PropertyTownhome}
	pt := pick(r, types)
	beds := between(r, 1, 6)
	city := pick(r, cities)
	lat := float64(between(r, 25_000, 48_000)) / 1000
	lng := -float64(between(r, 70_000, 123_000)) / 1000
	h := entity.House{
		Title:        fmt.Sprintf("%dBR %s in %s", beds, pt, city),
		Description:  pick(r, blurbs) + " " + pick(r, blurbs),
		Price:        between(r, 150_000, 3_000_000),
		Bedrooms:     beds,
		Bathrooms:    float64(between(r, 1, 5)),
		Sqft:         between(r, 600, 6000),
		LotSqft:      maybe(r, 0.7, func() int { return between(r, 1000, 30000) }),
		YearBuilt:    maybe(r, 0.9, func() int { return between(r, 1900, 2024) }),
		PropertyType: pt,
		AddressLine1: fmt.Sprintf("%d %s %s", between(r, 1, 9999), pick(r, streets), pick(r, suffixes)),
		City:         city,
		State:        pick(r, states),
		PostalCode:   fmt.Sprintf("%05d", between(r, 10000, 99950)),
		Country:      "US",
		Latitude:     &lat,
		Longitude:    &lng,
		HOAMonthly:   maybe(r, 0.4, func() int { return between(r, 100, 1200) }),
		HasGarage:    r.IntN(2) == 0,
		HasPool:      r.IntN(2) == 0,
		IsActive:     true,
	}
	h.Images = Images(r, h)
	return h
}

// Images picks 5 to 10 photos that match the listing's features.
func Images(r *rand.Rand, h entity.House) []entity.Image {
	var out []entity.Image
	add := func(tags, caption string) {
		c := caption
		out = append(out, entity.Image{
			URL:     fmt.Sprintf("https://loremflickr.com/1280/960/%s?lock=%d", tags, r.IntN(1_000_000)),
			Caption: &c,
			Order:   len(out),
		})
	}

	add("house,exterior,home", "Front exterior view")
	add("kitchen,modern,interior", "Modern kitchen with updated appliances")
	add("living-room,interior,cozy", "Spacious living room")
	for i := range min(h.Bedrooms, 3) {
		if i == 0 {
			add("master-bedroom,interior,comfortable", "Master bedroom suite")
		} else {
			add("bedroom,interior,comfortable", fmt.Sprintf("Bedroom %d", i+1))
		}
	}
	baths := min(int(h.Bathrooms+0.999), 2)
	for i := range baths {
		if i == 0 {
			add("bathroom,interior,modern", "Master bathroom")
		} else {
			add("bathroom,interior,modern", "Guest bathroom")
		}
	}
	if h.HasGarage {
		add("garage,car,driveway", "Attached garage")
	}
	if h.HasPool {
		add("pool,swimming,backyard", "Private swimming pool")
	}
	if h.LotSqft != nil && *h.LotSqft > 5000 {
		add("backyard,garden,landscape", "Spacious backyard")
	}
	if h.Sqft > 2000 {
		add("dining-room,interior,elegant", "Formal dining room")
	}
	if h.YearBuilt != nil && *h.YearBuilt > 2000 {
		add("home-office,workspace,modern", "Home office space")
	}
	for len(out) < 5 {
		room := pick(r, fillerRooms)
		add(room+",interior,home", "Additional "+strings.Replace(room, "-", " ", 1)+" view")
	}
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}
