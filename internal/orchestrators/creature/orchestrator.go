// Package creature implements the creature orchestrator: catching up a party
// outside of battle.
package creature

//go:generate mockgen -destination=mock/mock_service.go -package=creaturemock github.com/KirkDiggler/rpg-battle/internal/orchestrators/creature Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	creaturerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
)

// Service defines creature operations
type Service interface {
	// CreateCreature creates a creature with rolled IVs and its species'
	// default moveset
	CreateCreature(ctx context.Context, input *CreateCreatureInput) (*CreateCreatureOutput, error)

	GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error)

	// ListCreatures returns an owner's creatures, oldest first
	ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error)

	// HealParty restores HP and PP of every creature the owner has. Not
	// allowed while the owner is in a battle.
	HealParty(ctx context.Context, input *HealPartyInput) (*HealPartyOutput, error)

	// LearnMove resolves a move offered on level up. Not allowed while the
	// owner is in a battle.
	LearnMove(ctx context.Context, input *LearnMoveInput) (*LearnMoveOutput, error)
}

// Config holds the dependencies for the creature orchestrator
type Config struct {
	CreatureRepo creaturerepo.Repository
	BattleRepo   battlerepo.Repository
	Lookup       pokemon.Lookup
	Random       random.Source
	IDGenerator  idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.Lookup == nil {
		vb.RequiredField("Lookup")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	creatureRepo creaturerepo.Repository
	battleRepo   battlerepo.Repository
	lookup       pokemon.Lookup
	random       random.Source
	idGen        idgen.Generator
}

// NewOrchestrator creates a creature orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		creatureRepo: cfg.CreatureRepo,
		battleRepo:   cfg.BattleRepo,
		lookup:       cfg.Lookup,
		random:       cfg.Random,
		idGen:        cfg.IDGenerator,
	}, nil
}

func (o *orchestrator) CreateCreature(ctx context.Context, input *CreateCreatureInput) (*CreateCreatureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("OwnerID", input.OwnerID, vb)
	errors.ValidateRequired("SpeciesID", input.SpeciesID, vb)
	errors.ValidateRange("Level", input.Level, 1, pokemon.MaxLevel, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	species, err := o.lookup.SpeciesByID(input.SpeciesID)
	if err != nil {
		return nil, err
	}

	c, err := pokemon.NewCreature(&pokemon.CreatureConfig{
		ID:       o.idGen.Generate(),
		Species:  species,
		Nickname: input.Nickname,
		Level:    input.Level,
		Moves:    species.DefaultLearnedMoves(input.Level),
		Random:   o.random,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create creature")
	}

	out, err := o.creatureRepo.Create(ctx, creaturerepo.CreateInput{
		OwnerID:  input.OwnerID,
		Creature: c.ToData(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store creature")
	}

	slog.Info("Creature created",
		"creature_id", c.ID(),
		"owner_id", input.OwnerID,
		"species", species.ID,
		"level", c.Level(),
	)

	return &CreateCreatureOutput{Creature: out.Record}, nil
}

func (o *orchestrator) GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CreatureID == "" {
		return nil, errors.InvalidArgument("creature ID is required")
	}

	out, err := o.creatureRepo.Get(ctx, creaturerepo.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get creature").
			WithCreature(input.CreatureID)
	}

	return &GetCreatureOutput{Creature: out.Record}, nil
}

func (o *orchestrator) ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.creatureRepo.ListByOwner(ctx, creaturerepo.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list creatures")
	}

	return &ListCreaturesOutput{Creatures: out.Records}, nil
}

func (o *orchestrator) HealParty(ctx context.Context, input *HealPartyInput) (*HealPartyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	if err := o.requireNoBattle(ctx, input.OwnerID, "heal"); err != nil {
		return nil, err
	}

	list, err := o.creatureRepo.ListByOwner(ctx, creaturerepo.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list creatures")
	}

	healed := make([]*creaturerepo.Record, 0, len(list.Records))
	for _, record := range list.Records {
		c, err := pokemon.LoadCreatureFromData(record.Creature, o.lookup)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load creature %s", record.Creature.ID)
		}
		c.Heal()
		c.RestorePP()

		out, err := o.creatureRepo.Update(ctx, creaturerepo.UpdateInput{Creature: c.ToData()})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to update creature %s", c.ID())
		}
		healed = append(healed, out.Record)
	}

	slog.Info("Party healed",
		"owner_id", input.OwnerID,
		"count", len(healed),
	)

	return &HealPartyOutput{Creatures: healed}, nil
}

func (o *orchestrator) LearnMove(ctx context.Context, input *LearnMoveInput) (*LearnMoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("CreatureID", input.CreatureID, vb)
	errors.ValidateRequired("MoveID", input.MoveID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	got, err := o.creatureRepo.Get(ctx, creaturerepo.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get creature").
			WithCreature(input.CreatureID)
	}

	if err := o.requireNoBattle(ctx, got.Record.OwnerID, "learn a move"); err != nil {
		return nil, err
	}

	c, err := pokemon.LoadCreatureFromData(got.Record.Creature, o.lookup)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load creature")
	}

	move, err := o.lookup.MoveByID(input.MoveID)
	if err != nil {
		return nil, err
	}
	if !c.Species().Learns(move.ID, c.Level()) {
		return nil, errors.FailedPreconditionf("%s cannot learn %s at level %d", c.Species().ID, move.ID, c.Level())
	}

	if err := c.LearnMove(move, input.Slot); err != nil {
		return nil, errors.Wrap(err, "failed to learn move").
			WithCreature(c.ID())
	}

	out, err := o.creatureRepo.Update(ctx, creaturerepo.UpdateInput{Creature: c.ToData()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update creature")
	}

	slog.Info("Move learned",
		"creature_id", c.ID(),
		"move_id", move.ID,
		"slot", input.Slot,
	)

	return &LearnMoveOutput{Creature: out.Record}, nil
}

// requireNoBattle fails while the owner has an unfinished battle. The battle
// writes its own creature snapshots back when it ends, so changes made in the
// meantime would be lost.
func (o *orchestrator) requireNoBattle(ctx context.Context, ownerID, action string) error {
	active, err := o.battleRepo.GetActiveByOwner(ctx, battlerepo.GetActiveByOwnerInput{OwnerID: ownerID})
	switch {
	case err == nil:
		return errors.FailedPreconditionf("cannot %s during a battle", action).
			WithBattle(active.Record.ID)
	case errors.IsNotFound(err):
		return nil
	default:
		return errors.Wrap(err, "failed to check active battle")
	}
}
