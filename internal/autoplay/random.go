// Package autoplay has players that answer the engine without a human.
package autoplay

import (
	"context"

	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/models"
	"github.com/tatianab/portal-escape/internal/random"
)

// RandomPlayer picks an open portal at random and says yes with a fixed
// probability.
type RandomPlayer struct {
	Name      string
	YesChance float64
	src       random.Source
	heard     int
}

func NewRandomPlayer(name string, yesChance float64, src random.Source) *RandomPlayer {
	if src == nil {
		src = random.New()
	}
	return &RandomPlayer{Name: name, YesChance: yesChance, src: src}
}

func (p *RandomPlayer) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return random.Chance(p.src, p.YesChance), nil
}

func (p *RandomPlayer) AskDirection(ctx context.Context, prompt string, options []engine.PortalOption) (models.Direction, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return options[p.src.IntN(len(options))].Direction, nil
}

func (p *RandomPlayer) AskName(ctx context.Context, prompt string) (string, error) {
	return p.Name, ctx.Err()
}

func (p *RandomPlayer) Tell(msg string) {
	p.heard++
}

// Heard counts messages told so far.
func (p *RandomPlayer) Heard() int { return p.heard }
