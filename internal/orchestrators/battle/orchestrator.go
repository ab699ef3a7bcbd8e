// Package battle implements the battle orchestrator. It loads a session from
// the battle repository, lets the engine resolve it and stores the result,
// one request at a time per battle.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/opponent"
	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/engine/wild"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	creaturerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
)

// MaxPartySize is the number of creatures a side can bring
const MaxPartySize = 6

// Service defines battle operations
type Service interface {
	// StartWildBattle spawns a creature from the zone and starts a battle
	// against the owner's party
	StartWildBattle(ctx context.Context, input *StartWildBattleInput) (*StartWildBattleOutput, error)

	// StartTrainerBattle starts a battle against a generated trainer party
	StartTrainerBattle(ctx context.Context, input *StartTrainerBattleInput) (*StartTrainerBattleOutput, error)

	// ResolveRound resolves the player's action against the opponent's choice
	// Returns errors.InvalidAction when the action is not allowed; the battle
	// is left unchanged
	ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error)

	// ReplaceFainted sends in a creature after the active one fainted
	ReplaceFainted(ctx context.Context, input *ReplaceFaintedInput) (*ReplaceFaintedOutput, error)

	// Withdraw ends the battle instead of replacing a fainted creature
	Withdraw(ctx context.Context, input *WithdrawInput) (*WithdrawOutput, error)

	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)
}

// Catalog resolves the game data battles need
type Catalog interface {
	pokemon.Lookup
	Zone(id string) (*wild.Zone, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	BattleRepo   battlerepo.Repository
	CreatureRepo creaturerepo.Repository
	Catalog      Catalog
	Engine       *battle.Engine
	// Random spawns opponents; the engine draws from its own source
	Random      random.Source
	Chooser     opponent.Chooser
	IDGenerator idgen.Generator
	EventBus    events.EventBus
	// TTL overrides the repository's battle TTL when positive
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if c.Chooser == nil {
		vb.RequiredField("Chooser")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	battleRepo   battlerepo.Repository
	creatureRepo creaturerepo.Repository
	catalog      Catalog
	engine       *battle.Engine
	random       random.Source
	chooser      opponent.Chooser
	idGen        idgen.Generator
	eventBus     events.EventBus
	ttl          time.Duration

	locks *keyedMutex
}

// NewOrchestrator creates a battle orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		battleRepo:   cfg.BattleRepo,
		creatureRepo: cfg.CreatureRepo,
		catalog:      cfg.Catalog,
		engine:       cfg.Engine,
		random:       cfg.Random,
		chooser:      cfg.Chooser,
		idGen:        cfg.IDGenerator,
		eventBus:     cfg.EventBus,
		ttl:          cfg.TTL,
		locks:        newKeyedMutex(),
	}, nil
}

func (o *orchestrator) StartWildBattle(ctx context.Context, input *StartWildBattleInput) (*StartWildBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("OwnerID", input.OwnerID, vb)
	errors.ValidateRequired("ZoneID", input.ZoneID, vb)
	validatePartyIDs(vb, input.PartyIDs)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	zone, err := o.catalog.Zone(input.ZoneID)
	if err != nil {
		return nil, err
	}

	if err := o.ensureNoActiveBattle(ctx, input.OwnerID); err != nil {
		return nil, err
	}
	party, err := o.loadParty(ctx, input.OwnerID, input.PartyIDs)
	if err != nil {
		return nil, err
	}

	if input.RollEncounter {
		triggered, err := zone.Triggers(o.random)
		if err != nil {
			return nil, err
		}
		if !triggered {
			slog.Debug("No wild encounter", "owner_id", input.OwnerID, "zone_id", zone.ID)
			return &StartWildBattleOutput{Encountered: false}, nil
		}
	}

	foe, err := zone.Spawn(o.random, o.idGen.Generate())
	if err != nil {
		return nil, errors.Wrap(err, "failed to spawn wild creature")
	}

	record, err := o.start(ctx, input.OwnerID, zone.ID, party, []*pokemon.Creature{foe}, true)
	if err != nil {
		return nil, err
	}

	return &StartWildBattleOutput{Encountered: true, Battle: record}, nil
}

func (o *orchestrator) StartTrainerBattle(ctx context.Context, input *StartTrainerBattleInput) (*StartTrainerBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("OwnerID", input.OwnerID, vb)
	validatePartyIDs(vb, input.PartyIDs)
	if len(input.Opponent) == 0 || len(input.Opponent) > MaxPartySize {
		vb.Fieldf("Opponent", "must have between 1 and %d creatures", MaxPartySize)
	}
	for i, oc := range input.Opponent {
		if oc.SpeciesID == "" {
			vb.Fieldf("Opponent", "creature %d has no species", i)
		}
		if oc.Level < 1 || oc.Level > pokemon.MaxLevel {
			vb.Fieldf("Opponent", "creature %d level %d outside [1, %d]", i, oc.Level, pokemon.MaxLevel)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if err := o.ensureNoActiveBattle(ctx, input.OwnerID); err != nil {
		return nil, err
	}
	party, err := o.loadParty(ctx, input.OwnerID, input.PartyIDs)
	if err != nil {
		return nil, err
	}

	foes := make([]*pokemon.Creature, 0, len(input.Opponent))
	for _, oc := range input.Opponent {
		foe, err := o.generate(oc)
		if err != nil {
			return nil, err
		}
		foes = append(foes, foe)
	}

	record, err := o.start(ctx, input.OwnerID, "", party, foes, false)
	if err != nil {
		return nil, err
	}

	return &StartTrainerBattleOutput{Battle: record}, nil
}

func (o *orchestrator) ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	unlock := o.locks.lock(input.BattleID)
	defer unlock()

	record, session, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	opponentAction := battle.Run()
	if session.State() == battle.StateAwaitingActions {
		opponentAction, err = o.chooser.Choose(session.Active(battle.SideOpponent))
		if err != nil {
			return nil, errors.Wrap(err, "failed to choose opponent action")
		}
	}

	result, err := session.ResolveRound(ctx, input.Action, opponentAction)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve round").
			WithBattle(input.BattleID)
	}

	record, err = o.save(ctx, record, session)
	if err != nil {
		return nil, err
	}

	slog.Info("Battle round resolved",
		"battle_id", record.ID,
		"round", result.Round,
		"state", result.State,
	)
	o.publish(ctx, EventRoundResolved, session, record, &Notification{Result: result})

	if result.Ended() {
		if err := o.finish(ctx, record, session); err != nil {
			return nil, err
		}
	}

	return &ResolveRoundOutput{Result: result, Battle: record}, nil
}

func (o *orchestrator) ReplaceFainted(ctx context.Context, input *ReplaceFaintedInput) (*ReplaceFaintedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	unlock := o.locks.lock(input.BattleID)
	defer unlock()

	record, session, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	shift, err := session.ReplaceFainted(ctx, input.Index)
	if err != nil {
		return nil, errors.Wrap(err, "failed to replace fainted creature").
			WithBattle(input.BattleID)
	}

	record, err = o.save(ctx, record, session)
	if err != nil {
		return nil, err
	}
	o.publish(ctx, EventReplaced, session, record, &Notification{Shift: shift})

	return &ReplaceFaintedOutput{Shift: shift, Battle: record}, nil
}

func (o *orchestrator) Withdraw(ctx context.Context, input *WithdrawInput) (*WithdrawOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	unlock := o.locks.lock(input.BattleID)
	defer unlock()

	record, session, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	if err := session.Withdraw(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to withdraw").
			WithBattle(input.BattleID)
	}

	record, err = o.save(ctx, record, session)
	if err != nil {
		return nil, err
	}
	if err := o.finish(ctx, record, session); err != nil {
		return nil, err
	}

	return &WithdrawOutput{Battle: record}, nil
}

func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	out, err := o.battleRepo.Get(ctx, battlerepo.GetInput{ID: input.BattleID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get battle").
			WithBattle(input.BattleID)
	}

	return &GetBattleOutput{Battle: out.Record}, nil
}

func validatePartyIDs(vb *errors.ValidationBuilder, ids []string) {
	if len(ids) == 0 || len(ids) > MaxPartySize {
		vb.Fieldf("PartyIDs", "must have between 1 and %d creatures", MaxPartySize)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			vb.Field("PartyIDs", "creature ID cannot be empty")
			continue
		}
		if seen[id] {
			vb.Fieldf("PartyIDs", "creature %s listed twice", id)
		}
		seen[id] = true
	}
}

func (o *orchestrator) ensureNoActiveBattle(ctx context.Context, ownerID string) error {
	active, err := o.battleRepo.GetActiveByOwner(ctx, battlerepo.GetActiveByOwnerInput{OwnerID: ownerID})
	if err == nil {
		return errors.FailedPrecondition("owner is already in a battle").
			WithBattle(active.Record.ID)
	}
	if !errors.IsNotFound(err) {
		return errors.Wrap(err, "failed to check active battle")
	}
	return nil
}

func (o *orchestrator) loadParty(ctx context.Context, ownerID string, ids []string) ([]*pokemon.Creature, error) {
	party := make([]*pokemon.Creature, 0, len(ids))
	for _, id := range ids {
		out, err := o.creatureRepo.Get(ctx, creaturerepo.GetInput{ID: id})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get party creature").
				WithCreature(id)
		}
		if out.Record.OwnerID != ownerID {
			return nil, errors.FailedPreconditionf("creature %s belongs to another owner", id)
		}

		c, err := pokemon.LoadCreatureFromData(out.Record.Creature, o.catalog)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load creature %s", id)
		}
		party = append(party, c)
	}
	return party, nil
}

func (o *orchestrator) generate(oc OpponentCreature) (*pokemon.Creature, error) {
	species, err := o.catalog.SpeciesByID(oc.SpeciesID)
	if err != nil {
		return nil, err
	}

	c, err := pokemon.NewCreature(&pokemon.CreatureConfig{
		ID:      o.idGen.Generate(),
		Species: species,
		Level:   oc.Level,
		Moves:   species.DefaultLearnedMoves(oc.Level),
		Random:  o.random,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate %s", oc.SpeciesID)
	}
	return c, nil
}

func (o *orchestrator) start(
	ctx context.Context,
	ownerID, zoneID string,
	party, foes []*pokemon.Creature,
	wildBattle bool,
) (*battlerepo.Record, error) {
	session, err := battle.NewSession(&battle.SessionConfig{
		ID:       o.idGen.Generate(),
		Engine:   o.engine,
		Player:   party,
		Opponent: foes,
		Wild:     wildBattle,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start battle")
	}

	record, err := o.save(ctx, &battlerepo.Record{
		ID:      session.ID(),
		OwnerID: ownerID,
		ZoneID:  zoneID,
	}, session)
	if err != nil {
		return nil, err
	}

	slog.Info("Battle started",
		"battle_id", record.ID,
		"owner_id", ownerID,
		"wild", wildBattle,
		"zone_id", zoneID,
		"opponent", session.Active(battle.SideOpponent).Species().ID,
	)
	o.publish(ctx, EventStarted, session, record, &Notification{})

	return record, nil
}

func (o *orchestrator) load(ctx context.Context, id string) (*battlerepo.Record, *battle.Session, error) {
	out, err := o.battleRepo.Get(ctx, battlerepo.GetInput{ID: id})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get battle").
			WithBattle(id)
	}

	session, err := battle.LoadSession(out.Record.Session, o.engine, o.catalog)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load battle").
			WithBattle(id)
	}
	return out.Record, session, nil
}

func (o *orchestrator) save(ctx context.Context, record *battlerepo.Record, session *battle.Session) (*battlerepo.Record, error) {
	record.Session = session.ToData()

	out, err := o.battleRepo.Save(ctx, battlerepo.SaveInput{Record: record, TTL: o.ttl})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save battle").
			WithBattle(record.ID)
	}
	return out.Record, nil
}

// finish writes the player's creatures back and announces the outcome
func (o *orchestrator) finish(ctx context.Context, record *battlerepo.Record, session *battle.Session) error {
	for _, c := range session.Party(battle.SidePlayer).Creatures {
		if _, err := o.creatureRepo.Update(ctx, creaturerepo.UpdateInput{Creature: c.ToData()}); err != nil {
			return errors.Wrapf(err, "failed to store creature %s", c.ID()).
				WithBattle(record.ID)
		}
	}

	slog.Info("Battle ended",
		"battle_id", record.ID,
		"owner_id", record.OwnerID,
		"state", session.State(),
		"rounds", session.Round(),
	)
	o.publish(ctx, EventEnded, session, record, &Notification{})

	return nil
}
