package creature

import (
	creaturerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
)

// CreateCreatureInput defines the request for creating a creature
type CreateCreatureInput struct {
	OwnerID   string
	SpeciesID string
	Level     int
	Nickname  string
}

// CreateCreatureOutput defines the response for creating a creature
type CreateCreatureOutput struct {
	Creature *creaturerepo.Record
}

// GetCreatureInput defines the request for getting a creature
type GetCreatureInput struct {
	CreatureID string
}

// GetCreatureOutput defines the response for getting a creature
type GetCreatureOutput struct {
	Creature *creaturerepo.Record
}

// ListCreaturesInput defines the request for listing an owner's creatures
type ListCreaturesInput struct {
	OwnerID string
}

// ListCreaturesOutput defines the response for listing an owner's creatures
type ListCreaturesOutput struct {
	Creatures []*creaturerepo.Record
}

// HealPartyInput defines the request for healing every creature an owner has
type HealPartyInput struct {
	OwnerID string
}

// HealPartyOutput defines the response for healing a party
type HealPartyOutput struct {
	Creatures []*creaturerepo.Record
}

// LearnMoveInput defines the request for teaching a creature a move. A
// negative Slot fills a free slot; otherwise the move in Slot is forgotten.
type LearnMoveInput struct {
	CreatureID string
	MoveID     string
	Slot       int
}

// LearnMoveOutput defines the response for teaching a move
type LearnMoveOutput struct {
	Creature *creaturerepo.Record
}
