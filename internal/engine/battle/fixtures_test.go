package battle_test

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

func accuracy(v int) *int { return &v }

func hp(v int) *int { return &v }

var tackle = &pokemon.Move{ID: "TACKLE", Type: pokemon.TypeNormal, Category: pokemon.CategoryPhysical,
	Power: 40, Accuracy: accuracy(100), DefaultPP: 35}

var ember = &pokemon.Move{ID: "EMBER", Type: pokemon.TypeFire, Category: pokemon.CategorySpecial,
	Power: 40, Accuracy: accuracy(100), DefaultPP: 25}

var swift = &pokemon.Move{ID: "SWIFT", Type: pokemon.TypeNormal, Category: pokemon.CategorySpecial,
	Power: 60, DefaultPP: 20}

var wildSwing = &pokemon.Move{ID: "WILD_SWING", Type: pokemon.TypeNormal, Category: pokemon.CategoryPhysical,
	Power: 40, Accuracy: accuracy(50), DefaultPP: 10}

var neverHits = &pokemon.Move{ID: "NEVER_HITS", Type: pokemon.TypeNormal, Category: pokemon.CategoryPhysical,
	Power: 40, Accuracy: accuracy(0), DefaultPP: 10}

var growl = &pokemon.Move{
	ID:        "GROWL",
	Type:      pokemon.TypeNormal,
	Category:  pokemon.CategoryStatus,
	Accuracy:  accuracy(100),
	DefaultPP: 40,
	Effects:   &pokemon.MoveEffects{Stages: pokemon.Stages{pokemon.StagedAttack: -1}},
}

var swordsDance = &pokemon.Move{
	ID:        "SWORDS_DANCE",
	Type:      pokemon.TypeNormal,
	Category:  pokemon.CategoryStatus,
	DefaultPP: 20,
	Effects:   &pokemon.MoveEffects{Stages: pokemon.Stages{pokemon.StagedAttack: 2}},
}

func baseStats(all int, overrides pokemon.Stats) pokemon.Stats {
	stats := pokemon.Stats{}
	for _, stat := range pokemon.AllStats {
		stats[stat] = all
	}
	for stat, v := range overrides {
		stats[stat] = v
	}
	return stats
}

// At level 10 with zero IVs a base 50 creature has 30 HP and 13 in every
// other stat.
var normalmon = &pokemon.Species{
	ID:             "NORMALMON",
	Types:          []pokemon.Type{pokemon.TypeNormal},
	BaseStats:      baseStats(50, nil),
	BaseExperience: 100,
	Curve:          pokemon.CurveMediumFast,
	Learnset:       []pokemon.LevelMoves{{Level: 1, Moves: []*pokemon.Move{tackle, growl}}},
}

// speed 22 at level 10
var speedy = &pokemon.Species{
	ID:             "SPEEDY",
	Types:          []pokemon.Type{pokemon.TypeNormal},
	BaseStats:      baseStats(50, pokemon.Stats{pokemon.StatSpeed: 100}),
	BaseExperience: 100,
	Curve:          pokemon.CurveMediumFast,
}

var spook = &pokemon.Species{
	ID:             "SPOOK",
	Types:          []pokemon.Type{pokemon.TypeGhost},
	BaseStats:      baseStats(50, nil),
	BaseExperience: 100,
	Curve:          pokemon.CurveMediumFast,
}

// special attack 22 and special defense 6 at level 10
var sage = &pokemon.Species{
	ID:    "SAGE",
	Types: []pokemon.Type{pokemon.TypeNormal},
	BaseStats: baseStats(50, pokemon.Stats{
		pokemon.StatSpecialAttack:  100,
		pokemon.StatSpecialDefense: 10,
	}),
	BaseExperience: 100,
	Curve:          pokemon.CurveMediumFast,
}

func testChart() *pokemon.TypeChart {
	return pokemon.NewTypeChart(map[pokemon.Type]pokemon.TypeRelations{
		pokemon.TypeNormal: {
			NoEffect: []pokemon.Type{pokemon.TypeGhost},
		},
		pokemon.TypeFire: {
			NotEffective:   []pokemon.Type{pokemon.TypeFire, pokemon.TypeWater},
			SuperEffective: []pokemon.Type{pokemon.TypeGrass},
		},
	})
}

type creatureOption func(cfg *pokemon.CreatureConfig)

func withHP(v int) creatureOption {
	return func(cfg *pokemon.CreatureConfig) { cfg.HP = hp(v) }
}

func withLevel(level int) creatureOption {
	return func(cfg *pokemon.CreatureConfig) { cfg.Level = level }
}

func withMoves(moves ...*pokemon.LearnedMove) creatureOption {
	return func(cfg *pokemon.CreatureConfig) { cfg.Moves = moves }
}

func mustCreature(id string, species *pokemon.Species, opts ...creatureOption) *pokemon.Creature {
	cfg := &pokemon.CreatureConfig{
		ID:      id,
		Species: species,
		Level:   10,
		Moves:   []*pokemon.LearnedMove{pokemon.NewLearnedMove(tackle)},
		IVs:     baseStats(0, nil),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c, err := pokemon.NewCreature(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

type fixtureLookup struct{}

func (fixtureLookup) SpeciesByID(id string) (*pokemon.Species, error) {
	for _, s := range []*pokemon.Species{normalmon, speedy, spook, sage} {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.NotFoundf("species %s not found", id)
}

func (fixtureLookup) MoveByID(id string) (*pokemon.Move, error) {
	for _, m := range []*pokemon.Move{tackle, ember, swift, wildSwing, neverHits, growl, swordsDance} {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errors.NotFoundf("move %s not found", id)
}
