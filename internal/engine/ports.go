package engine

import (
	"context"

	"github.com/tatianab/portal-escape/internal/models"
)

// PortalOption is an open portal as offered to the player.
type PortalOption struct {
	Direction models.Direction
	Entry     models.ProbabilityEntry
}

func (o PortalOption) String() string {
	return o.Entry.String()
}

// Channel is how the engine talks to the player. Every Ask blocks until the
// player answers or ctx is done.
//
// AskDirection returns models.ErrInvalidDirection for input that names no
// direction; the engine re-prompts. Any other error aborts the session.
type Channel interface {
	AskYesNo(ctx context.Context, prompt string) (bool, error)
	AskDirection(ctx context.Context, prompt string, options []PortalOption) (models.Direction, error)
	AskName(ctx context.Context, prompt string) (string, error)
	Tell(msg string)
}

// StatusObserver is implemented by channels that display live player
// status. The engine pushes a fresh Status before every ask.
type StatusObserver interface {
	Observe(Status)
}

// OutcomeSink persists a concluded session.
type OutcomeSink interface {
	Record(ctx context.Context, session *models.Session) error
}

// Status is a copy of the player-visible state.
type Status struct {
	Name      string
	Round     int
	Jumps     int
	Coins     int
	Cloaks    int
	Table     []models.TableRow
	Concluded bool
}
