package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	StartingJumps = 3
	MinNameLength = 3
	MaxNameLength = 12
)

// ErrInvalidName is returned for names outside 3-12 characters.
var ErrInvalidName = fmt.Errorf("name must be %d-%d characters", MinNameLength, MaxNameLength)

// PlayerState tracks jumps and the terminal flags. Only Won and Ended stop
// a session. CaughtByPolice is carried for records but nothing sets it.
type PlayerState struct {
	Name           string `yaml:"name"`
	JumpsRemaining int    `yaml:"jumps_remaining"`
	Won            bool   `yaml:"won"`
	Ended          bool   `yaml:"ended"`
	CaughtByPolice bool   `yaml:"caught_by_police"`
}

// NewPlayerState returns a player with the starting jumps.
func NewPlayerState(name string) *PlayerState {
	return &PlayerState{Name: name, JumpsRemaining: StartingJumps}
}

// Active reports whether the session should keep going.
func (p *PlayerState) Active() bool {
	return !p.Won && !p.Ended
}

// UseJump spends one jump. It reports false when none are left.
func (p *PlayerState) UseJump() bool {
	if p.JumpsRemaining <= 0 {
		return false
	}
	p.JumpsRemaining--
	return true
}

var errAlreadyOver = errors.New("session already over")

// MarkWon flips the session to won.
func (p *PlayerState) MarkWon() error {
	if !p.Active() {
		return errAlreadyOver
	}
	p.Won = true
	return nil
}

// MarkEnded flips the session to ended.
func (p *PlayerState) MarkEnded() error {
	if !p.Active() {
		return errAlreadyOver
	}
	p.Ended = true
	return nil
}

// JumpsMessage reports the remaining jumps with the right plural.
func (p *PlayerState) JumpsMessage() string {
	if p.JumpsRemaining == 1 {
		return "You have 1 jump remaining!"
	}
	return fmt.Sprintf("You have %d jumps remaining!", p.JumpsRemaining)
}

// ValidateName trims name and checks its length.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
