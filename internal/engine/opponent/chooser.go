// Package opponent picks actions for computer controlled sides
package opponent

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

//go:generate mockgen -destination=mock/mock_chooser.go -package=opponentmock github.com/KirkDiggler/rpg-battle/internal/engine/opponent Chooser

// Chooser decides the action of the creature in battle
type Chooser interface {
	Choose(active *pokemon.Creature) (battle.Action, error)
}

// Random picks uniformly among the moves that still have uses, and runs when
// none are left.
type Random struct {
	random random.Source
}

// NewRandom creates a random chooser
func NewRandom(src random.Source) (*Random, error) {
	if src == nil {
		return nil, errors.InvalidArgument("random source is required")
	}
	return &Random{random: src}, nil
}

// Choose implements Chooser
func (r *Random) Choose(active *pokemon.Creature) (battle.Action, error) {
	usable := UsableSlots(active)
	if len(usable) == 0 {
		return battle.Run(), nil
	}

	pick, err := r.random.IntBetween(0, len(usable)-1)
	if err != nil {
		return battle.Action{}, errors.Wrap(err, "failed to pick a move")
	}
	return battle.Fight(usable[pick]), nil
}

// First always uses the first move with uses left
type First struct{}

// Choose implements Chooser
func (First) Choose(active *pokemon.Creature) (battle.Action, error) {
	usable := UsableSlots(active)
	if len(usable) == 0 {
		return battle.Run(), nil
	}
	return battle.Fight(usable[0]), nil
}

// UsableSlots returns the move slots that still have uses
func UsableSlots(c *pokemon.Creature) []int {
	var slots []int
	for i, lm := range c.Moves() {
		if lm.Usable() {
			slots = append(slots, i)
		}
	}
	return slots
}
