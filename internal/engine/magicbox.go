package engine

import (
	"context"
	"fmt"

	"github.com/tatianab/portal-escape/internal/models"
	"github.com/tatianab/portal-escape/internal/random"
)

// Item is what a magic box can hold.
type Item string

const (
	ItemCoins Item = "coins"
	ItemAlarm Item = "alarm"
	ItemCloak Item = "cloak"
	ItemCoal  Item = "coal"
)

const (
	BoxChance   = 0.5
	AlarmBump   = 0.03
	MinBoxCoins = 10
	MaxBoxCoins = 35
)

type weightedItem struct {
	item   Item
	weight float64
}

// boxItems is ordered; DrawItem walks it cumulatively.
var boxItems = []weightedItem{
	{ItemCoins, 0.30},
	{ItemAlarm, 0.25},
	{ItemCloak, 0.15},
	{ItemCoal, 0.30},
}

// ItemWeights returns the box odds by item.
func ItemWeights() map[Item]float64 {
	out := make(map[Item]float64, len(boxItems))
	for _, w := range boxItems {
		out[w.item] = w.weight
	}
	return out
}

// DrawItem picks the first item whose cumulative weight reaches the draw.
func DrawItem(src random.Source) Item {
	u := src.Float64()
	sum := 0.0
	for _, w := range boxItems {
		sum += w.weight
		if u <= sum {
			return w.item
		}
	}
	// float residue when the weights sum just under 1
	return boxItems[len(boxItems)-1].item
}

// offerMagicBox runs the per-round box lottery. Rounds that found the exit
// never get a box.
func (e *Engine) offerMagicBox(ctx context.Context, out *models.RoundOutcome) error {
	if !e.player.Active() || !random.Chance(e.src, BoxChance) {
		return nil
	}
	e.ch.Tell("You have found a magic box!")
	open, err := e.askYesNo(ctx, "Do you want to open it? (yes/no)")
	if err != nil {
		return err
	}
	if !open {
		e.ch.Tell("Magic box not opened.")
		return nil
	}

	item := DrawItem(e.src)
	out.Notes = append(out.Notes, "box: "+string(item))
	switch item {
	case ItemCoins:
		found := random.Between(e.src, MinBoxCoins, MaxBoxCoins)
		e.inv.AddCoins(found)
		e.ch.Tell(fmt.Sprintf("You found %d coins! You now have %d coins.", found, e.inv.Coins))
	case ItemAlarm:
		e.ch.Tell("Oh no! You found a magic police alarm!")
		e.table.BumpPoliceAll(AlarmBump)
		e.ch.Tell("Probability of encountering magic police raised 3% in all directions!")
	case ItemCloak:
		e.ch.Tell("You found an invisibility cloak!")
		return e.offerCloak(ctx)
	case ItemCoal:
		e.ch.Tell("You found coal. It does nothing.")
	}
	return nil
}

func (e *Engine) offerCloak(ctx context.Context) error {
	if e.inv.Full() {
		e.ch.Tell(fmt.Sprintf("Inventory already carrying %d items. Item unable to be added to inventory", models.MaxSlots))
		return nil
	}
	keep, err := e.askYesNo(ctx, "Do you want to add the item to your inventory? (yes/no)")
	if err != nil {
		return err
	}
	if !keep {
		e.ch.Tell("Item not added to inventory.")
		return nil
	}
	if err := e.inv.AddCloak(); err != nil {
		return fmt.Errorf("add cloak: %w", err)
	}
	e.ch.Tell("Item added to inventory!")
	e.ch.Tell(e.inv.SlotsMessage())
	return nil
}
