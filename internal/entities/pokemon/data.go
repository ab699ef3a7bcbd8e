package pokemon

import (
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Lookup resolves catalog references held by snapshots
type Lookup interface {
	SpeciesByID(id string) (*Species, error)
	MoveByID(id string) (*Move, error)
}

// CreatureData is the serializable snapshot of a creature
type CreatureData struct {
	ID         string            `json:"id"`
	SpeciesID  string            `json:"species_id"`
	Nickname   string            `json:"nickname"`
	Level      int               `json:"level"`
	Experience int               `json:"experience"`
	HP         int               `json:"hp"`
	IVs        Stats             `json:"ivs"`
	Stages     Stages            `json:"stages,omitempty"`
	Moves      []LearnedMoveData `json:"moves"`
}

// LearnedMoveData is the serializable snapshot of a learned move
type LearnedMoveData struct {
	MoveID    string `json:"move_id"`
	PP        int    `json:"pp"`
	CurrentPP int    `json:"current_pp"`
}

// ToData snapshots the creature
func (c *Creature) ToData() *CreatureData {
	moves := make([]LearnedMoveData, len(c.moves))
	for i, lm := range c.moves {
		moves[i] = LearnedMoveData{
			MoveID:    lm.Move.ID,
			PP:        lm.PP,
			CurrentPP: lm.CurrentPP,
		}
	}

	return &CreatureData{
		ID:         c.id,
		SpeciesID:  c.species.ID,
		Nickname:   c.nickname,
		Level:      c.level,
		Experience: c.experience,
		HP:         c.hp,
		IVs:        c.ivs.Clone(),
		Stages:     c.stages.Clone(),
		Moves:      moves,
	}
}

// LoadCreatureFromData restores a creature from a snapshot
func LoadCreatureFromData(data *CreatureData, lookup Lookup) (*Creature, error) {
	if data == nil {
		return nil, errors.InvalidArgument("data is required")
	}

	species, err := lookup.SpeciesByID(data.SpeciesID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve species %s", data.SpeciesID)
	}

	moves := make([]*LearnedMove, len(data.Moves))
	for i, md := range data.Moves {
		move, err := lookup.MoveByID(md.MoveID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve move %s", md.MoveID)
		}
		moves[i] = &LearnedMove{
			Move:      move,
			PP:        md.PP,
			CurrentPP: md.CurrentPP,
		}
	}

	hp := data.HP
	experience := data.Experience
	c, err := NewCreature(&CreatureConfig{
		ID:         data.ID,
		Species:    species,
		Nickname:   data.Nickname,
		Level:      data.Level,
		Moves:      moves,
		HP:         &hp,
		Experience: &experience,
		IVs:        data.IVs,
	})
	if err != nil {
		return nil, err
	}

	for stat, stage := range data.Stages {
		if !stat.Valid() {
			return nil, errors.InvalidArgumentf("unknown staged stat %s", stat)
		}
		c.stages[stat] = stage
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}
