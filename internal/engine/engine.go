package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tatianab/portal-escape/internal/logging"
	"github.com/tatianab/portal-escape/internal/models"
	"github.com/tatianab/portal-escape/internal/random"
)

// Params wires a session. Table and Channel are required; the rest default
// to a fresh player, a starting inventory and a non-deterministic source.
type Params struct {
	Table     *models.ProbabilityTable
	Channel   Channel
	Sink      OutcomeSink
	Source    random.Source
	Player    *models.PlayerState
	Inventory *models.Inventory
	Now       func() time.Time
}

// Engine runs one session. It is not safe for concurrent use; all state is
// owned by the goroutine calling Play.
type Engine struct {
	table    *models.ProbabilityTable
	ch       Channel
	sink     OutcomeSink
	src      random.Source
	player   *models.PlayerState
	inv      *models.Inventory
	now      func() time.Time
	round    int
	history  []models.RoundOutcome
	session  *models.Session
	recorded bool
}

func New(p Params) (*Engine, error) {
	if p.Table == nil {
		return nil, errors.New("engine: probability table is required")
	}
	if p.Channel == nil {
		return nil, errors.New("engine: channel is required")
	}
	e := &Engine{
		table:  p.Table,
		ch:     p.Channel,
		sink:   p.Sink,
		src:    p.Source,
		player: p.Player,
		inv:    p.Inventory,
		now:    p.Now,
	}
	if e.src == nil {
		e.src = random.New()
	}
	if e.player == nil {
		e.player = models.NewPlayerState("")
	}
	if e.inv == nil {
		e.inv = models.NewInventory()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

// Player returns the live player state.
func (e *Engine) Player() *models.PlayerState { return e.player }

// Inventory returns the live inventory.
func (e *Engine) Inventory() *models.Inventory { return e.inv }

// Session returns the concluded record, or nil while play continues.
func (e *Engine) Session() *models.Session { return e.session }

func (e *Engine) Status() Status {
	return Status{
		Name:      e.player.Name,
		Round:     e.round,
		Jumps:     e.player.JumpsRemaining,
		Coins:     e.inv.Coins,
		Cloaks:    e.inv.Cloaks,
		Table:     e.table.Rows(),
		Concluded: e.session != nil,
	}
}

// Introduce asks for the player's name and explains the game.
func (e *Engine) Introduce(ctx context.Context) error {
	for {
		e.observe()
		input, err := e.ch.AskName(ctx, fmt.Sprintf("Please enter your name (%d-%d characters only):", models.MinNameLength, models.MaxNameLength))
		if err != nil {
			return err
		}
		name, err := models.ValidateName(input)
		if err != nil {
			e.ch.Tell(fmt.Sprintf("Your %s.", err))
			continue
		}
		e.player.Name = name
		break
	}
	name := e.player.Name
	e.ch.Tell(name + "! The new king has outlawed magic. You must escape the kingdom as soon as possible!")
	e.ch.Tell("Escape by using the magical portals to find an exit to another realm.")
	e.ch.Tell("Warning, you must avoid the magic police. Good luck, " + name + "!")
	return nil
}

// Play runs rounds until the player wins or the game ends. It returns an
// error only when the channel fails or ctx is cancelled; no outcome is
// recorded in that case.
func (e *Engine) Play(ctx context.Context) (*models.Session, error) {
	if e.player.Name == "" {
		if err := e.Introduce(ctx); err != nil {
			return nil, err
		}
	}
	for e.player.Active() {
		if _, err := e.PlayRound(ctx); err != nil {
			return nil, err
		}
	}
	return e.session, nil
}

// PlayRound plays one round: portals, choice, exit, police, drift, box,
// encounter.
// Cloak, bribe and jump outcomes end the round; the next round draws fresh
// portals.
func (e *Engine) PlayRound(ctx context.Context) (models.RoundOutcome, error) {
	if !e.player.Active() {
		return models.RoundOutcome{}, errors.New("engine: session is over")
	}
	e.round++
	out := models.RoundOutcome{Round: e.round, Kind: models.RoundNeutral}

	err := e.playRound(ctx, &out)
	if err != nil {
		return out, err
	}
	e.history = append(e.history, out)
	fields := logging.Fields{"round": out.Round, "kind": string(out.Kind)}
	if out.Direction != nil {
		fields["direction"] = out.Direction.String()
	}
	if len(out.Notes) > 0 {
		fields["notes"] = strings.Join(out.Notes, "; ")
	}
	logging.Info("round played", fields)
	if e.session != nil {
		e.record(ctx)
	}
	return out, nil
}

func (e *Engine) playRound(ctx context.Context, out *models.RoundOutcome) error {
	portals := GeneratePortals(e.table, e.src)
	if len(portals) == 0 {
		out.Kind = models.RoundNoPortals
		e.ch.Tell("No portals available!")
		_, err := e.attemptJump(ctx, out)
		return err
	}

	d, err := e.chooseDirection(ctx, portals)
	if err != nil {
		return err
	}
	out.Direction = &d

	if CheckExit(e.table, d, e.src) {
		out.Kind = models.RoundExitFound
		e.conclude(ctx, models.ResultWon)
		return nil
	}
	encountered := CheckPolice(e.table, d, e.src)
	e.table.DriftExit(d, e.src)
	e.table.DriftPolice(d, e.src)

	// The box comes before the police step in.
	if err := e.offerMagicBox(ctx, out); err != nil {
		return err
	}
	if encountered {
		out.Kind = models.RoundPoliceEncountered
		_, err := e.handleEncounter(ctx, out)
		return err
	}
	return nil
}

func (e *Engine) chooseDirection(ctx context.Context, portals []models.Direction) (models.Direction, error) {
	options := make([]PortalOption, 0, len(portals))
	for _, d := range portals {
		entry, _ := e.table.Get(d)
		options = append(options, PortalOption{Direction: d, Entry: entry})
	}
	for {
		e.observe()
		d, err := e.ch.AskDirection(ctx, "Choose an available portal direction:", options)
		if errors.Is(err, models.ErrInvalidDirection) {
			e.ch.Tell("That is not a direction. Type the first letter of an open portal.")
			continue
		}
		if err != nil {
			return 0, err
		}
		if !slices.Contains(portals, d) {
			e.ch.Tell(fmt.Sprintf("The %s portal is not open.", d))
			continue
		}
		return d, nil
	}
}

func (e *Engine) askYesNo(ctx context.Context, prompt string) (bool, error) {
	e.observe()
	return e.ch.AskYesNo(ctx, prompt)
}

func (e *Engine) observe() {
	if o, ok := e.ch.(StatusObserver); ok {
		o.Observe(e.Status())
	}
}

// conclude flips the terminal flag and builds the session record. The
// record reaches the sink once the round is complete.
func (e *Engine) conclude(ctx context.Context, result models.Result) {
	if e.session != nil {
		return
	}
	msg := models.EndedMessage
	if result == models.ResultWon {
		msg = models.WonMessage
		_ = e.player.MarkWon()
	} else {
		_ = e.player.MarkEnded()
	}

	e.session = &models.Session{
		Player:     *e.player,
		Inventory:  *e.inv,
		Result:     result,
		Message:    msg,
		Rounds:     e.round,
		FinishedAt: e.now(),
		Table:      e.table.Rows(),
	}
	e.ch.Tell(msg)
	logging.Info("session concluded", logging.Fields{"player": e.player.Name, "result": string(result), "rounds": e.round})
}

// record hands the session to the sink. A failing sink is reported to the
// player; the result stands.
func (e *Engine) record(ctx context.Context) {
	if e.recorded {
		return
	}
	e.recorded = true
	e.session.History = slices.Clone(e.history)
	if e.sink == nil {
		return
	}
	if err := e.sink.Record(ctx, e.session); err != nil {
		logging.Error("record outcome", err, logging.Fields{"player": e.player.Name})
		e.ch.Tell(fmt.Sprintf("Warning: could not save the outcome: %v", err))
		return
	}
	e.ch.Tell("Game concluded. See the outcome file for the result.")
}
