package client

import "strings"

// DefaultSwipeThreshold is the horizontal drag, in cells, that counts as a swipe.
const DefaultSwipeThreshold = 8

// DirectionForRelease maps a drag released at horizontal offset dx. Releases
// inside the threshold snap back and return false.
func DirectionForRelease(dx, threshold int) (Direction, bool) {
	switch {
	case dx > threshold:
		return Right, true
	case dx < -threshold:
		return Left, true
	}
	return "", false
}

// DirectionForKey maps arrow keys and vim-style h/l.
func DirectionForKey(key string) (Direction, bool) {
	switch strings.ToLower(key) {
	case "left", "h":
		return Left, true
	case "right", "l":
		return Right, true
	}
	return "", false
}
