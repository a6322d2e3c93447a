package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	ErrHouseNotFound        = fmt.Errorf("house %w", ErrNotFound)
	ErrBuyerProfileNotFound = fmt.Errorf("buyer profile %w", ErrNotFound)
	ErrAgentNotFound        = fmt.Errorf("agent %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)

	ErrDuplicateSwipe     = errors.New("swipe already recorded")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrForbidden          = errors.New("forbidden")

	// ErrStorageUnavailable is returned when image upload has no bucket configured.
	ErrStorageUnavailable = errors.New("object storage not configured")
)
