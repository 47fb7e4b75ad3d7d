package models

import "time"

// RoundKind tags what happened in a round.
type RoundKind string

const (
	RoundNoPortals         RoundKind = "NO_PORTALS"
	RoundExitFound         RoundKind = "EXIT_FOUND"
	RoundPoliceEncountered RoundKind = "POLICE"
	RoundNeutral           RoundKind = "NEUTRAL"
)

// RoundOutcome describes one round. Direction is unset for RoundNoPortals.
type RoundOutcome struct {
	Round     int        `yaml:"round"`
	Kind      RoundKind  `yaml:"kind"`
	Direction *Direction `yaml:"direction,omitempty"`
	Notes     []string   `yaml:"notes,omitempty"` // e.g. "bribed 7", "jumped"
}

// Result is the final status of a session.
type Result string

const (
	ResultWon   Result = "WON"
	ResultEnded Result = "ENDED"
)

const (
	WonMessage   = "Congratulations! You found an exit and escaped!"
	EndedMessage = "You have no more jumps remaining. Game over."
)

// Session is the record written once a session concludes.
type Session struct {
	Player     PlayerState    `yaml:"player"`
	Inventory  Inventory      `yaml:"inventory"`
	Result     Result         `yaml:"result"`
	Message    string         `yaml:"message"`
	Rounds     int            `yaml:"rounds"`
	FinishedAt time.Time      `yaml:"finished_at"`
	History    []RoundOutcome `yaml:"history,omitempty"`
	Table      []TableRow     `yaml:"table,omitempty"`
}
