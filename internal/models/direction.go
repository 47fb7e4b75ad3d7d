package models

import (
	"errors"
	"strings"
)

// ErrInvalidDirection is returned when player input names no direction.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction identifies one of the four portals.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in table order.
var Directions = [...]Direction{North, East, South, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Letter is the single-character code players type.
func (d Direction) Letter() string {
	return d.String()[:1]
}

func (d Direction) valid() bool {
	return d >= North && d <= West
}

// ParseDirection reads a direction from the first letter of input.
// "e", "East" and " east portal" all parse as East.
func ParseDirection(input string) (Direction, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrInvalidDirection
	}
	switch strings.ToUpper(s[:1]) {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	}
	return 0, ErrInvalidDirection
}

// MarshalYAML writes the direction by name.
func (d Direction) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts a direction name or letter.
func (d *Direction) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
