package pokemon

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// MaxMoves is the number of moves a creature can know at once
const MaxMoves = 4

// EntityType is the core.Entity type reported by creatures
const EntityType = "creature"

// IntSource draws uniform integers in [a, b]
type IntSource interface {
	IntBetween(a, b int) (int, error)
}

// CreatureConfig configures a new creature
type CreatureConfig struct {
	ID       string
	Species  *Species
	Nickname string
	Level    int
	Moves    []*LearnedMove

	// Optional. HP defaults to max HP, experience to the curve value at
	// Level floored at zero, IVs are rolled from Random when absent.
	HP         *int
	Experience *int
	IVs        Stats
	Random     IntSource
}

// Validate validates the config
func (cfg *CreatureConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Species == nil {
		vb.RequiredField("Species")
	}
	errors.ValidateRange("Level", cfg.Level, 1, MaxLevel, vb)
	if len(cfg.Moves) > MaxMoves {
		vb.Fieldf("Moves", "must have at most %d moves", MaxMoves)
	}
	for i, lm := range cfg.Moves {
		if lm == nil || lm.Move == nil {
			vb.Fieldf("Moves", "move %d is empty", i)
		}
	}
	if cfg.IVs == nil && cfg.Random == nil {
		vb.Field("Random", "is required when IVs are not given")
	}
	for _, stat := range AllStats {
		if cfg.IVs == nil {
			break
		}
		iv, ok := cfg.IVs[stat]
		if !ok {
			vb.Fieldf("IVs", "missing %s", stat)
			continue
		}
		errors.ValidateRange("IVs."+string(stat), iv, MinIV, MaxIV, vb)
	}
	if cfg.Experience != nil && *cfg.Experience < 0 {
		vb.Field("Experience", "must not be negative")
	}

	return vb.Build()
}

// Creature is a mutable combatant. Effective stats are derived from species,
// level and IVs on every read.
//
// Invariants: 0 <= HP <= MaxHP, every stage in [MinStage, MaxStage],
// CurrentPP <= PP for every move.
type Creature struct {
	id         string
	species    *Species
	nickname   string
	level      int
	moves      []*LearnedMove
	ivs        Stats
	experience int
	hp         int
	stages     Stages
}

var _ core.Entity = (*Creature)(nil)

// NewCreature creates a creature from its config
func NewCreature(cfg *CreatureConfig) (*Creature, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ivs := cfg.IVs.Clone()
	if ivs == nil {
		rolled, err := RollIVs(cfg.Random)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll IVs")
		}
		ivs = rolled
	}

	nickname := cfg.Nickname
	if nickname == "" {
		nickname = cfg.Species.ID
	}

	c := &Creature{
		id:       cfg.ID,
		species:  cfg.Species,
		nickname: nickname,
		level:    cfg.Level,
		moves:    append([]*LearnedMove(nil), cfg.Moves...),
		ivs:      ivs,
		stages:   freshStages(),
	}

	if cfg.Experience != nil {
		c.experience = *cfg.Experience
	} else {
		// MEDIUM_SLOW is negative at level 1
		c.experience = max(0, cfg.Species.Curve.ExperienceForLevel(cfg.Level))
	}

	c.hp = c.MaxHP()
	if cfg.HP != nil {
		if *cfg.HP < 0 || *cfg.HP > c.hp {
			return nil, errors.InvalidArgumentf("hp %d outside [0, %d]", *cfg.HP, c.hp)
		}
		c.hp = *cfg.HP
	}

	return c, nil
}

// RollIVs draws every IV uniformly in [MinIV, MaxIV]
func RollIVs(src IntSource) (Stats, error) {
	ivs := make(Stats, len(AllStats))
	for _, stat := range AllStats {
		iv, err := src.IntBetween(MinIV, MaxIV)
		if err != nil {
			return nil, err
		}
		ivs[stat] = iv
	}
	return ivs, nil
}

func freshStages() Stages {
	stages := make(Stages, len(AllStagedStats))
	for _, stat := range AllStagedStats {
		stages[stat] = 0
	}
	return stages
}

// GetID implements core.Entity
func (c *Creature) GetID() string { return c.id }

// GetType implements core.Entity
func (c *Creature) GetType() string { return EntityType }

// ID returns the creature id
func (c *Creature) ID() string { return c.id }

// Species returns the creature's species
func (c *Creature) Species() *Species { return c.species }

// Nickname returns the creature's nickname
func (c *Creature) Nickname() string { return c.nickname }

// Level returns the current level
func (c *Creature) Level() int { return c.level }

// Experience returns the cumulative experience
func (c *Creature) Experience() int { return c.experience }

// ExperienceToNextLevel returns the cumulative experience needed for the next level
func (c *Creature) ExperienceToNextLevel() int {
	return c.species.Curve.ExperienceForLevel(c.level + 1)
}

// HP returns the current hit points
func (c *Creature) HP() int { return c.hp }

// Conscious reports whether the creature can still fight
func (c *Creature) Conscious() bool { return c.hp > 0 }

// Moves returns the learned moves in slot order
func (c *Creature) Moves() []*LearnedMove { return c.moves }

// Move returns the learned move in slot, or nil
func (c *Creature) Move(slot int) *LearnedMove {
	if slot < 0 || slot >= len(c.moves) {
		return nil
	}
	return c.moves[slot]
}

// Knows reports whether the creature already knows a move
func (c *Creature) Knows(moveID string) bool {
	for _, lm := range c.moves {
		if lm.Move.ID == moveID {
			return true
		}
	}
	return false
}

// IVs returns a copy of the individual values
func (c *Creature) IVs() Stats { return c.ivs.Clone() }

// Stat returns the effective value of one stat at the current level
func (c *Creature) Stat(stat Stat) int {
	return EffectiveStat(stat, c.level, c.species.BaseStats[stat], c.ivs[stat])
}

// Stats returns every effective stat at the current level
func (c *Creature) Stats() Stats {
	out := make(Stats, len(AllStats))
	for _, stat := range AllStats {
		out[stat] = c.Stat(stat)
	}
	return out
}

// MaxHP returns the effective HP stat
func (c *Creature) MaxHP() int { return c.Stat(StatHP) }

// Stage returns the current stage of a staged stat
func (c *Creature) Stage(stat StagedStat) int { return c.stages[stat] }

// Stages returns a copy of every stage
func (c *Creature) Stages() Stages { return c.stages.Clone() }

// StagedValue returns a stat multiplied by its stage multiplier
func (c *Creature) StagedValue(stat Stat, staged StagedStat) float64 {
	return float64(c.Stat(stat)) * StageMultiplier(staged, c.stages[staged])
}

// ApplyHPDelta changes HP, clamped into [0, MaxHP], and returns the delta
// actually applied.
func (c *Creature) ApplyHPDelta(delta int) int {
	before := c.hp
	c.hp = clamp(c.hp+delta, 0, c.MaxHP())
	return c.hp - before
}

// ApplyStageDelta changes a stage, clamped into [MinStage, MaxStage], and
// returns the delta actually applied.
func (c *Creature) ApplyStageDelta(stat StagedStat, delta int) int {
	before := c.stages[stat]
	c.stages[stat] = ClampStage(before + delta)
	return c.stages[stat] - before
}

// Heal restores HP to max and resets every stage. Move uses are untouched.
func (c *Creature) Heal() {
	c.hp = c.MaxHP()
	c.stages = freshStages()
}

// RestorePP refills every learned move
func (c *Creature) RestorePP() {
	for _, lm := range c.moves {
		lm.Restore()
	}
}

// ResetStages sets every stage back to zero
func (c *Creature) ResetStages() {
	c.stages = freshStages()
}

// Validate checks the creature invariants
func (c *Creature) Validate() error {
	if maxHP := c.MaxHP(); c.hp < 0 || c.hp > maxHP {
		return errors.InvariantViolationf("creature %s hp %d outside [0, %d]", c.id, c.hp, maxHP)
	}
	for stat, stage := range c.stages {
		if stage < MinStage || stage > MaxStage {
			return errors.InvariantViolationf("creature %s stage %s=%d outside [%d, %d]",
				c.id, stat, stage, MinStage, MaxStage)
		}
	}
	for _, lm := range c.moves {
		if lm.CurrentPP < 0 || lm.CurrentPP > lm.PP {
			return errors.InvariantViolationf("creature %s move %s pp %d outside [0, %d]",
				c.id, lm.Move.ID, lm.CurrentPP, lm.PP)
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
