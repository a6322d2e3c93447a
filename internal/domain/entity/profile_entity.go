package entity

import "time"

// Profile is the role-specific half of an account. Exactly one variant
// exists per user and its Role always matches User.Role.
type Profile interface {
	Role() Role
	ProfileID() string
	isProfile()
}

type BuyerProfile struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SellerProfile struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgentProfile carries the public reputation metadata of a listing agent.
type AgentProfile struct {
	ID        string
	UserID    string
	LicenseNo *string
	Bio       *string
	Website   *string
	Brokerage *string
	Rating    *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BuyerProfile) Role() Role  { return RoleBuyer }
func (SellerProfile) Role() Role { return RoleSeller }
func (AgentProfile) Role() Role  { return RoleAgent }

func (p BuyerProfile) ProfileID() string  { return p.ID }
func (p SellerProfile) ProfileID() string { return p.ID }
func (p AgentProfile) ProfileID() string  { return p.ID }

func (BuyerProfile) isProfile()  {}
func (SellerProfile) isProfile() {}
func (AgentProfile) isProfile()  {}

// Account pairs a user with its profile variant.
type Account struct {
	User    User
	Profile Profile
}

// Agent is an agent profile joined with its user identity.
type Agent struct {
	Profile AgentProfile
	User    User
}

// Seller is a seller profile joined with its user identity.
type Seller struct {
	Profile SellerProfile
	User    User
}

// AgentDetail is the public agent page: identity plus every listing.
type AgentDetail struct {
	Agent
	Listings []House
}
