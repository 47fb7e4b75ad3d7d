package engine

import (
	"context"
	"testing"

	"github.com/tatianab/portal-escape/internal/models"
)

// neutralTable has East always open with no exit and no police, plus a
// closed West whose police chance shows alarm bumps.
func neutralTable() *models.ProbabilityTable {
	table := eastOnly(0, 0)
	table.Set(models.West, models.ProbabilityEntry{Label: "West", Open: 0, Exit: 0.2, Police: 0.5})
	return table
}

// boxDraws: East portal, West portal, exit, police, box gate, item.
func boxDraws(item float64) []float64 {
	return []float64{0, 0.9, 0.9, 0.9, 0.1, item}
}

func TestMagicBoxCoins(t *testing.T) {
	ch := newScripted().answer("open it", true)
	eng := newTestEngine(t, neutralTable(), ch, nil, nil)
	// drift exit, drift police, reward offset
	eng.src = &seqSource{floats: boxDraws(0.1), ints: []int{5, 5, 5}}

	out, err := eng.PlayRound(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	inv := eng.Inventory()
	if inv.Coins != 25 || inv.LastFoundCoins != 15 {
		t.Errorf("expected 15 coins found, got %+v", inv)
	}
	if out.Kind != models.RoundNeutral || len(out.Notes) != 1 || out.Notes[0] != "box: coins" {
		t.Errorf("unexpected outcome %+v", out)
	}
	if !ch.heard("You found 15 coins! You now have 25 coins.") {
		t.Errorf("missing reward message in %v", ch.told)
	}
}

func TestMagicBoxAlarm(t *testing.T) {
	table := neutralTable()
	ch := newScripted().answer("open it", true)
	eng := newTestEngine(t, table, ch, nil, nil)
	eng.src = &seqSource{floats: boxDraws(0.4)}

	if _, err := eng.PlayRound(context.Background()); err != nil {
		t.Fatal(err)
	}
	west, _ := table.Get(models.West)
	if diff := west.Police - 0.53; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("west police = %f, want 0.53", west.Police)
	}
	if !ch.heard("magic police alarm") {
		t.Error("expected alarm message")
	}
}

func TestMagicBoxCloakKept(t *testing.T) {
	ch := newScripted().answer("open it", true).answer("add the item", true)
	eng := newTestEngine(t, neutralTable(), ch, nil, nil)
	eng.src = &seqSource{floats: boxDraws(0.6)}

	if _, err := eng.PlayRound(context.Background()); err != nil {
		t.Fatal(err)
	}
	if eng.Inventory().Cloaks != 1 {
		t.Errorf("expected a cloak, got %+v", eng.Inventory())
	}
	if !ch.heard("You now have 1 item in your inventory") {
		t.Errorf("missing inventory count in %v", ch.told)
	}
}

func TestMagicBoxCloakRejectedWhenFull(t *testing.T) {
	ch := newScripted().answer("open it", true)
	eng := newTestEngine(t, neutralTable(), ch, nil, nil)
	eng.Inventory().Cloaks = models.MaxSlots
	eng.src = &seqSource{floats: boxDraws(0.6)}

	if _, err := eng.PlayRound(context.Background()); err != nil {
		t.Fatal(err)
	}
	if eng.Inventory().UsedSlots() != models.MaxSlots {
		t.Errorf("slots = %d", eng.Inventory().UsedSlots())
	}
	if !ch.heard("Inventory already carrying 3 items") {
		t.Errorf("expected rejection message in %v", ch.told)
	}
}

func TestMagicBoxCoal(t *testing.T) {
	ch := newScripted().answer("open it", true)
	eng := newTestEngine(t, neutralTable(), ch, nil, nil)
	eng.src = &seqSource{floats: boxDraws(0.9)}
	before := *eng.Inventory()

	if _, err := eng.PlayRound(context.Background()); err != nil {
		t.Fatal(err)
	}
	if *eng.Inventory() != before {
		t.Errorf("coal changed the inventory: %+v", eng.Inventory())
	}
}

func TestMagicBoxNotOpened(t *testing.T) {
	ch := newScripted().answer("open it", false)
	eng := newTestEngine(t, neutralTable(), ch, nil, nil)
	src := &seqSource{floats: boxDraws(0.1)}
	eng.src = src

	if _, err := eng.PlayRound(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(src.floats) != 1 {
		t.Errorf("no item should be drawn for an unopened box")
	}
	if !ch.heard("Magic box not opened.") {
		t.Error("expected decline message")
	}
}

func TestMagicBoxGateClosed(t *testing.T) {
	ch := newScripted()
	eng := newTestEngine(t, neutralTable(), ch, nil, nil)
	eng.src = &seqSource{floats: []float64{0, 0.9, 0.9, 0.9, 0.5}}

	if _, err := eng.PlayRound(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ch.heard("magic box") {
		t.Error("box offered although the gate draw missed")
	}
}
