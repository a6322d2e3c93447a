package entity

import (
	"time"
)

// Role is fixed at signup and decides which profile variant a user owns.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
	RoleAgent  Role = "AGENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAgent:
		return true
	}
	return false
}

// User is the aggregate root for identity.
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	Phone        *string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
