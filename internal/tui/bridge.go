package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/portal-escape/internal/console"
	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/models"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// Bridge implements engine.Channel on top of a running bubbletea program.
// The engine goroutine blocks in Ask* until the model hands back the typed
// answer.
type Bridge struct {
	program sender
}

type askKind int

const (
	askYesNo askKind = iota
	askDirection
	askName
)

type promptMsg struct {
	kind    askKind
	text    string
	options []engine.PortalOption
	reply   chan string
}

type tellMsg struct{ text string }

type statusMsg struct{ status engine.Status }

type doneMsg struct {
	session *models.Session
	err     error
}

func (b *Bridge) ask(ctx context.Context, kind askKind, text string, options []engine.PortalOption) (string, error) {
	reply := make(chan string, 1)
	b.program.Send(promptMsg{kind: kind, text: text, options: options, reply: reply})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case answer := <-reply:
		return answer, nil
	}
}

func (b *Bridge) AskYesNo(ctx context.Context, prompt string) (bool, error) {
	answer, err := b.ask(ctx, askYesNo, prompt, nil)
	if err != nil {
		return false, err
	}
	return console.ParseYesNo(answer), nil
}

func (b *Bridge) AskDirection(ctx context.Context, prompt string, options []engine.PortalOption) (models.Direction, error) {
	answer, err := b.ask(ctx, askDirection, prompt, options)
	if err != nil {
		return 0, err
	}
	return engine.ParseChoice(answer, options)
}

func (b *Bridge) AskName(ctx context.Context, prompt string) (string, error) {
	return b.ask(ctx, askName, prompt, nil)
}

func (b *Bridge) Tell(msg string) {
	b.program.Send(tellMsg{msg})
}

func (b *Bridge) Observe(s engine.Status) {
	b.program.Send(statusMsg{s})
}
