// Package wild generates wild creature encounters for a zone
package wild

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Zone is an area where wild creatures appear
type Zone struct {
	ID string

	// EncounterRate is the chance in [0, 1] that a step triggers a battle
	EncounterRate float64
	Encounters    []Encounter
}

// Encounter is one weighted entry of a zone's encounter table
type Encounter struct {
	Species  *pokemon.Species
	Weight   int
	MinLevel int
	MaxLevel int
}

// Validate checks the zone definition
func (z *Zone) Validate() error {
	vb := errors.NewValidationBuilder()

	if z.ID == "" {
		vb.RequiredField("ID")
	}
	if z.EncounterRate < 0 || z.EncounterRate > 1 {
		vb.Fieldf("EncounterRate", "%g outside [0, 1]", z.EncounterRate)
	}
	if len(z.Encounters) == 0 {
		vb.RequiredField("Encounters")
	}
	for i, e := range z.Encounters {
		if e.Species == nil {
			vb.Fieldf("Encounters", "entry %d has no species", i)
		}
		if e.Weight <= 0 {
			vb.Fieldf("Encounters", "entry %d weight %d must be positive", i, e.Weight)
		}
		if e.MinLevel < 1 || e.MaxLevel > pokemon.MaxLevel || e.MinLevel > e.MaxLevel {
			vb.Fieldf("Encounters", "entry %d level range [%d, %d] is invalid", i, e.MinLevel, e.MaxLevel)
		}
	}

	return vb.BuildWithCode(errors.CodeInvalidConfiguration)
}

// Triggers rolls whether a step in the zone starts a battle
func (z *Zone) Triggers(src random.Source) (bool, error) {
	roll, err := src.FloatBetween(0, 1)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll encounter")
	}
	return roll >= 1-z.EncounterRate, nil
}

// Pick is a rolled encounter
type Pick struct {
	Species *pokemon.Species
	Level   int
}

// Roll picks a species by weight and a level within its range
func (z *Zone) Roll(src random.Source) (*Pick, error) {
	total := 0
	for _, e := range z.Encounters {
		total += e.Weight
	}
	if total <= 0 {
		return nil, errors.InvalidConfigurationf("zone %s has no weighted encounters", z.ID)
	}

	roll, err := src.IntBetween(1, total)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll species")
	}

	var picked *Encounter
	for i := range z.Encounters {
		roll -= z.Encounters[i].Weight
		if roll <= 0 {
			picked = &z.Encounters[i]
			break
		}
	}

	level, err := src.IntBetween(picked.MinLevel, picked.MaxLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll level")
	}

	return &Pick{Species: picked.Species, Level: level}, nil
}

// Spawn rolls an encounter and creates the wild creature with rolled IVs and
// its species' default moveset for the level.
func (z *Zone) Spawn(src random.Source, id string) (*pokemon.Creature, error) {
	pick, err := z.Roll(src)
	if err != nil {
		return nil, err
	}

	creature, err := pokemon.NewCreature(&pokemon.CreatureConfig{
		ID:      id,
		Species: pick.Species,
		Level:   pick.Level,
		Moves:   pick.Species.DefaultLearnedMoves(pick.Level),
		Random:  src,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to spawn %s in zone %s", pick.Species.ID, z.ID)
	}
	return creature, nil
}
