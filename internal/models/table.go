package models

import (
	"fmt"
	"math"

	"github.com/tatianab/portal-escape/internal/random"
)

// MaxDriftPercent bounds the step applied by a drift.
const MaxDriftPercent = 5

// ProbabilityEntry holds a direction's chances, each in [0, 1].
type ProbabilityEntry struct {
	Label  string  `yaml:"label"`
	Open   float64 `yaml:"open"`
	Exit   float64 `yaml:"exit"`
	Police float64 `yaml:"police"`
}

// String renders the entry the way portal options are offered to players.
func (e ProbabilityEntry) String() string {
	return fmt.Sprintf("%s (Exit: %.2f%%, Police: %.2f%%)", e.Label, e.Exit*100, e.Police*100)
}

// ProbabilityTable maps directions to their chances. A session shares one
// table by pointer; Get hands out copies so callers cannot mutate entries
// behind the clamping mutators.
type ProbabilityTable struct {
	entries [len(Directions)]ProbabilityEntry
	present [len(Directions)]bool
}

// NewProbabilityTable returns an empty table.
func NewProbabilityTable() *ProbabilityTable {
	return &ProbabilityTable{}
}

// Set stores an entry, clamping every chance into [0, 1].
func (t *ProbabilityTable) Set(d Direction, e ProbabilityEntry) {
	if !d.valid() {
		return
	}
	e.Open = Clamp(e.Open)
	e.Exit = Clamp(e.Exit)
	e.Police = Clamp(e.Police)
	if e.Label == "" {
		e.Label = d.String()
	}
	t.entries[d] = e
	t.present[d] = true
}

// Has reports whether d was loaded.
func (t *ProbabilityTable) Has(d Direction) bool {
	return d.valid() && t.present[d]
}

// Get returns a copy of d's entry.
func (t *ProbabilityTable) Get(d Direction) (ProbabilityEntry, bool) {
	if !t.Has(d) {
		return ProbabilityEntry{}, false
	}
	return t.entries[d], true
}

// Present lists loaded directions in table order.
func (t *ProbabilityTable) Present() []Direction {
	var out []Direction
	for _, d := range Directions {
		if t.present[d] {
			out = append(out, d)
		}
	}
	return out
}

// DriftExit moves d's exit chance by a random ±1..5 percent.
func (t *ProbabilityTable) DriftExit(d Direction, src random.Source) {
	if !t.Has(d) {
		return
	}
	step := float64(random.SignedStep(src, MaxDriftPercent)) / 100
	t.entries[d].Exit = Clamp(t.entries[d].Exit + step)
}

// DriftPolice moves d's police chance by a random ±1..5 percent.
func (t *ProbabilityTable) DriftPolice(d Direction, src random.Source) {
	if !t.Has(d) {
		return
	}
	step := float64(random.SignedStep(src, MaxDriftPercent)) / 100
	t.entries[d].Police = Clamp(t.entries[d].Police + step)
}

// BumpPoliceAll raises every direction's police chance by delta.
func (t *ProbabilityTable) BumpPoliceAll(delta float64) {
	for _, d := range Directions {
		if t.present[d] {
			t.entries[d].Police = Clamp(t.entries[d].Police + delta)
		}
	}
}

// Rows snapshots the table for persistence.
func (t *ProbabilityTable) Rows() []TableRow {
	var rows []TableRow
	for _, d := range t.Present() {
		rows = append(rows, TableRow{Direction: d, ProbabilityEntry: t.entries[d]})
	}
	return rows
}

// TableRow is one persisted table line.
type TableRow struct {
	Direction        Direction `yaml:"direction"`
	ProbabilityEntry `yaml:",inline"`
}

// Clamp limits p to [0, 1]. NaN becomes 0.
func Clamp(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
