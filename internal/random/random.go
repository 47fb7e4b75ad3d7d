// Package random is the single source of randomness for a game session.
//
// Every draw the engine makes goes through a Source so tests can inject a
// seeded generator and replay a session draw for draw.
package random

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source produces uniform draws.
type Source interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n), n > 0
}

type pcgSource struct{ r *rand.Rand }

func (s *pcgSource) Float64() float64 { return s.r.Float64() }
func (s *pcgSource) IntN(n int) int   { return s.r.IntN(n) }

// New returns a non-deterministic source seeded from crypto/rand.
func New() Source {
	var buf [16]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// fall back to the runtime-seeded generator
		return NewSeeded(rand.Uint64())
	}
	hi := binary.BigEndian.Uint64(buf[:8])
	lo := binary.BigEndian.Uint64(buf[8:])
	return &pcgSource{r: rand.New(rand.NewPCG(hi, lo))}
}

// NewSeeded returns a replayable source.
func NewSeeded(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, 0))}
}

// Chance performs one Bernoulli trial: true iff the draw falls under p.
// p <= 0 never hits and p >= 1 always hits; exactly one draw is consumed
// either way.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Between returns a uniform integer in [lo, hi]. When lo == hi no draw is
// made.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// SignedStep returns a uniform value from {-max..-1, +1..+max} with a single
// draw.
func SignedStep(src Source, max int) int {
	n := src.IntN(2 * max)
	if n < max {
		return -(n + 1)
	}
	return n - max + 1
}
