package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/models"
	"github.com/tatianab/portal-escape/internal/random"
)

func TestParseYesNo(t *testing.T) {
	for _, in := range []string{"yes", "Y", " YES ", "y\n"} {
		if !ParseYesNo(in) {
			t.Errorf("ParseYesNo(%q) = false", in)
		}
	}
	for _, in := range []string{"", "no", "yeah", "n", "ye"} {
		if ParseYesNo(in) {
			t.Errorf("ParseYesNo(%q) = true", in)
		}
	}
}

func TestAskDirection(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("east\nq\n"), &out)
	options := []engine.PortalOption{{Direction: models.East, Entry: models.ProbabilityEntry{Label: "East", Exit: 0.1, Police: 0.25}}}

	d, err := c.AskDirection(context.Background(), "Choose:", options)
	if err != nil || d != models.East {
		t.Fatalf("got %v, %v", d, err)
	}
	if !strings.Contains(out.String(), "East (Exit: 10.00%, Police: 25.00%)") {
		t.Errorf("options not listed: %q", out.String())
	}
	if _, err := c.AskDirection(context.Background(), "Choose:", options); !errors.Is(err, models.ErrInvalidDirection) {
		t.Errorf("expected invalid direction, got %v", err)
	}
}

func TestAskDirectionByLabel(t *testing.T) {
	c := New(strings.NewReader("up\n"), io.Discard)
	options := []engine.PortalOption{
		{Direction: models.North, Entry: models.ProbabilityEntry{Label: "Up"}},
		{Direction: models.East, Entry: models.ProbabilityEntry{Label: "Down"}},
	}
	d, err := c.AskDirection(context.Background(), "Choose:", options)
	if err != nil || d != models.North {
		t.Fatalf("got %v, %v", d, err)
	}
}

func TestReadLineEOF(t *testing.T) {
	c := New(strings.NewReader("Percival"), io.Discard)
	name, err := c.AskName(context.Background(), "Name?")
	if err != nil || name != "Percival" {
		t.Fatalf("got %q, %v", name, err)
	}
	if _, err := c.AskYesNo(context.Background(), "Again?"); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReadLineCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c := New(r, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.AskYesNo(ctx, "Wait?"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

// A full scripted session through the console: one portal with a certain
// exit wins on the first answer.
func TestConsoleDrivesEngine(t *testing.T) {
	table := models.NewProbabilityTable()
	table.Set(models.South, models.ProbabilityEntry{Label: "South", Open: 1, Exit: 1})
	var out bytes.Buffer
	eng, err := engine.New(engine.Params{
		Table:   table,
		Channel: New(strings.NewReader("Lancelot\nnorth\ns\n"), &out),
		Source:  random.NewSeeded(1),
	})
	if err != nil {
		t.Fatal(err)
	}
	session, err := eng.Play(context.Background())
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if session.Result != models.ResultWon || session.Player.Name != "Lancelot" {
		t.Errorf("unexpected session %+v", session)
	}
	if !strings.Contains(out.String(), "The North portal is not open.") {
		t.Errorf("expected re-prompt in output: %q", out.String())
	}
}
