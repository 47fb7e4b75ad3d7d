package engine

import (
	"context"
	"fmt"

	"github.com/tatianab/portal-escape/internal/models"
)

// EncounterResult is how a police encounter ended.
type EncounterResult int

const (
	EncounterEvaded EncounterResult = iota // cloak used
	EncounterBribed
	EncounterJumped // jailed, then jumped back
	EncounterEnded  // jailed with no jump taken
)

func (r EncounterResult) String() string {
	switch r {
	case EncounterEvaded:
		return "evaded"
	case EncounterBribed:
		return "bribed"
	case EncounterJumped:
		return "jailed, jumped"
	case EncounterEnded:
		return "jailed"
	default:
		return "unknown"
	}
}

type encounterState int

const (
	encounterStart encounterState = iota
	encounterOfferCloak
	encounterOfferBribe
	encounterComputeBribe
	encounterJail
)

// handleEncounter walks the cloak, bribe and jail states until the
// encounter resolves. Every result other than EncounterEnded continues play
// with a fresh portal set.
func (e *Engine) handleEncounter(ctx context.Context, out *models.RoundOutcome) (EncounterResult, error) {
	e.ch.Tell("You have been caught by the magic police!")
	state := encounterStart
	for {
		switch state {
		case encounterStart:
			if e.inv.Cloaks > 0 {
				state = encounterOfferCloak
			} else {
				e.ch.Tell("You don't have any invisibility cloaks in your inventory!")
				state = encounterOfferBribe
			}

		case encounterOfferCloak:
			use, err := e.askYesNo(ctx, "Do you want to use an invisibility cloak? (yes/no)")
			if err != nil {
				return 0, err
			}
			if !use {
				state = encounterOfferBribe
				continue
			}
			if err := e.inv.UseCloak(); err != nil {
				return 0, fmt.Errorf("use cloak: %w", err)
			}
			e.ch.Tell("You have used a cloak and hidden from the magic police!")
			out.Notes = append(out.Notes, EncounterEvaded.String())
			return EncounterEvaded, nil

		case encounterOfferBribe:
			bribe, err := e.askYesNo(ctx, "Do you want to bribe the magic police? (yes/no)")
			if err != nil {
				return 0, err
			}
			if bribe {
				state = encounterComputeBribe
			} else {
				e.ch.Tell("You have chosen not to bribe the magic police and been sent to jail!")
				state = encounterJail
			}

		case encounterComputeBribe:
			amount := BribeAmount(e.inv.Coins, e.src)
			e.ch.Tell(fmt.Sprintf("The magic police demand %d coins as a bribe! You have %d coins available.", amount, e.inv.Coins))
			if !e.inv.CanAfford(amount) {
				e.ch.Tell("You don't have enough coins to bribe the magic police!")
				e.ch.Tell("You have been sent to jail!")
				state = encounterJail
				continue
			}
			pay, err := e.askYesNo(ctx, fmt.Sprintf("Do you want to pay this bribe of %d coins? (yes/no)", amount))
			if err != nil {
				return 0, err
			}
			if !pay {
				e.ch.Tell("You have chosen not to pay the bribe and been sent to jail.")
				state = encounterJail
				continue
			}
			if err := e.inv.SpendCoins(amount); err != nil {
				return 0, fmt.Errorf("pay bribe: %w", err)
			}
			e.ch.Tell("You have successfully bribed the police!")
			e.ch.Tell(fmt.Sprintf("You have %d coins remaining.", e.inv.Coins))
			out.Notes = append(out.Notes, fmt.Sprintf("%s %d", EncounterBribed, amount))
			return EncounterBribed, nil

		case encounterJail:
			jumped, err := e.attemptJump(ctx, out)
			if err != nil {
				return 0, err
			}
			if jumped {
				return EncounterJumped, nil
			}
			out.Notes = append(out.Notes, EncounterEnded.String())
			return EncounterEnded, nil
		}
	}
}
