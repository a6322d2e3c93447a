package entity

import "time"

type Direction string

const (
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
)

func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Swipe is one decision by a user on a listing. At most one exists per
// (UserID, HouseID).
type Swipe struct {
	ID        string
	UserID    string
	HouseID   string
	Direction Direction
	DwellMs   *int
	CreatedAt time.Time
}
