package models

import (
	"errors"
	"fmt"
)

const (
	MaxSlots      = 3
	StartingCoins = 10
)

var (
	ErrNoCloak           = errors.New("no cloak in inventory")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrInventoryFull     = errors.New("inventory full")
)

// Inventory holds the player's coins and cloaks. Coins are not slot items;
// every cloak takes one of MaxSlots slots.
type Inventory struct {
	Coins          int `yaml:"coins"`
	Cloaks         int `yaml:"cloaks"`
	LastFoundCoins int `yaml:"last_found_coins"`
}

func NewInventory() *Inventory {
	return &Inventory{Coins: StartingCoins}
}

func (inv *Inventory) UsedSlots() int { return inv.Cloaks }

func (inv *Inventory) Full() bool { return inv.UsedSlots() >= MaxSlots }

// AddCloak stores a cloak, or returns ErrInventoryFull and changes nothing.
func (inv *Inventory) AddCloak() error {
	if inv.Full() {
		return ErrInventoryFull
	}
	inv.Cloaks++
	return nil
}

// UseCloak consumes one cloak and frees its slot.
func (inv *Inventory) UseCloak() error {
	if inv.Cloaks <= 0 {
		return ErrNoCloak
	}
	inv.Cloaks--
	return nil
}

// AddCoins credits a box reward.
func (inv *Inventory) AddCoins(n int) {
	inv.LastFoundCoins = n
	inv.Coins += n
}

// SpendCoins debits n coins. Callers check CanAfford first; overspending
// is a bug and is reported, never clamped.
func (inv *Inventory) SpendCoins(n int) error {
	if n < 0 || inv.Coins < n {
		return fmt.Errorf("spend %d of %d: %w", n, inv.Coins, ErrInsufficientCoins)
	}
	inv.Coins -= n
	return nil
}

func (inv *Inventory) CanAfford(n int) bool { return inv.Coins >= n }

// SlotsMessage reports how many items are carried.
func (inv *Inventory) SlotsMessage() string {
	if inv.UsedSlots() == 1 {
		return "You now have 1 item in your inventory"
	}
	return fmt.Sprintf("You now have %d items in your inventory", inv.UsedSlots())
}
