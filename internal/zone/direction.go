package zone

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned for anything but the four compass points.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is the side of a zone a connection leaves from.
type Direction string

const (
	North Direction = "north"
	East  Direction = "east"
	South Direction = "south"
	West  Direction = "west"
)

// Directions returns the compass points clockwise from north.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}

// Valid reports whether d is a compass point.
func (d Direction) Valid() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

// Opposite returns the direction pointing back. Invalid directions map to
// themselves.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

// ParseDirection accepts a compass point in any case.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}
