package engine

import (
	"context"

	"github.com/tatianab/portal-escape/internal/models"
)

// attemptJump offers a jump back. It reports true when the player jumped
// and play continues with a fresh portal set; false means the session has
// ended.
func (e *Engine) attemptJump(ctx context.Context, out *models.RoundOutcome) (bool, error) {
	if e.player.JumpsRemaining == 0 {
		e.conclude(ctx, models.ResultEnded)
		return false, nil
	}
	jump, err := e.askYesNo(ctx, "Do you want to jump backwards? (yes/no)")
	if err != nil {
		return false, err
	}
	if !jump {
		e.ch.Tell("Jump not used.")
		e.conclude(ctx, models.ResultEnded)
		return false, nil
	}
	e.player.UseJump()
	out.Notes = append(out.Notes, "jumped")
	e.ch.Tell(e.player.JumpsMessage())
	return true, nil
}
