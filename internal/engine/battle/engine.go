// Package battle resolves turn-based creature battles.
//
// The Engine holds the pure rules: one move application, one escape attempt,
// the experience yield of a defeated creature and who acts first. A Session
// drives rounds between two parties on top of it and tracks the battle state.
//
// Every random draw goes through the engine's random.Source, in a fixed order,
// so a scripted source reproduces a round exactly.
package battle

import (
	"math"

	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Damage and reward constants
const (
	CriticalMultiplier          = 1.5
	MinDamageFactor             = 0.85
	MaxDamageFactor             = 1.0
	CriticalRollSides           = 256
	WildExperienceMultiplier    = 1.0
	TrainerExperienceMultiplier = 1.5
)

// Config configures an Engine
type Config struct {
	Random random.Source
	Chart  *pokemon.TypeChart
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if c.Chart == nil {
		vb.RequiredField("Chart")
	}

	return vb.Build()
}

// Engine applies battle rules
type Engine struct {
	random random.Source
	chart  *pokemon.TypeChart
}

// NewEngine creates an engine
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{
		random: cfg.Random,
		chart:  cfg.Chart,
	}, nil
}

// Chart returns the type chart used for effectiveness
func (e *Engine) Chart() *pokemon.TypeChart {
	return e.chart
}

// ValidateFight checks that attacker can use the move in slot
func ValidateFight(attacker *pokemon.Creature, slot int) error {
	if !attacker.Conscious() {
		return errors.InvalidActionf("creature %s has fainted", attacker.ID())
	}
	learned := attacker.Move(slot)
	if learned == nil {
		return errors.InvalidActionf("creature %s has no move in slot %d", attacker.ID(), slot)
	}
	if !learned.Usable() {
		return errors.InvalidActionf("move %s has no uses left", learned.Move.ID)
	}
	return nil
}

// ResolveFight applies the move in slot from attacker to defender.
//
// Draw order: accuracy (only when the move has an accuracy), then for damaging
// moves the critical roll and the damage factor. All draws happen before any
// state changes, so a failed draw leaves both creatures untouched. The move
// use is spent whether or not it lands.
func (e *Engine) ResolveFight(attacker, defender *pokemon.Creature, slot int) (*FightResult, error) {
	if err := ValidateFight(attacker, slot); err != nil {
		return nil, err
	}
	learned := attacker.Move(slot)
	move := learned.Move

	result := &FightResult{
		AttackerID: attacker.ID(),
		DefenderID: defender.ID(),
		MoveID:     move.ID,
	}

	missed, err := e.missed(attacker, move)
	if err != nil {
		return nil, err
	}
	if missed {
		learned.Spend()
		result.Failed = true
		return result, nil
	}

	if move.Category.Damaging() {
		damage, err := e.damage(attacker, defender, move)
		if err != nil {
			return nil, err
		}
		result.Damage = damage.amount
		result.Critical = damage.critical
		result.Multiplier = damage.multiplier
		result.Effectiveness = pokemon.EffectivenessTier(damage.multiplier)
		result.HPDelta = defender.ApplyHPDelta(-damage.amount)
	}

	for _, effect := range move.StageEffects() {
		target := attacker
		if effect.Delta < 0 {
			target = defender
		}
		applied := target.ApplyStageDelta(effect.Stat, effect.Delta)
		result.StageChanges = append(result.StageChanges, StageChange{
			CreatureID: target.ID(),
			Stat:       effect.Stat,
			Requested:  effect.Delta,
			Applied:    applied,
		})
	}

	learned.Spend()
	result.DefenderFainted = !defender.Conscious()
	return result, nil
}

func (e *Engine) missed(attacker *pokemon.Creature, move *pokemon.Move) (bool, error) {
	if move.Accuracy == nil {
		return false, nil
	}

	roll, err := e.random.IntBetween(1, 100)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll accuracy")
	}
	threshold := float64(*move.Accuracy) *
		pokemon.StageMultiplier(pokemon.StagedAccuracy, attacker.Stage(pokemon.StagedAccuracy))

	return float64(roll) > threshold, nil
}

type damageRoll struct {
	amount     int
	critical   bool
	multiplier float64
}

func (e *Engine) damage(attacker, defender *pokemon.Creature, move *pokemon.Move) (*damageRoll, error) {
	critical, err := e.critical(attacker)
	if err != nil {
		return nil, err
	}
	factor, err := e.random.FloatBetween(MinDamageFactor, MaxDamageFactor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll damage factor")
	}

	multiplier := e.chart.Effectiveness(move.Type, defender.Species().Types)
	if multiplier == 0 {
		return &damageRoll{critical: critical, multiplier: 0}, nil
	}

	attack, defense := attackAndDefense(attacker, defender, move.Category)
	level := float64(attacker.Level())
	base := (2*level/5+2)*float64(move.Power)*attack/defense/50 + 5

	modifier := factor * multiplier
	if critical {
		modifier *= CriticalMultiplier
	}

	amount := int(math.RoundToEven(base * modifier))
	if amount < 1 {
		amount = 1
	}
	return &damageRoll{
		amount:     amount,
		critical:   critical,
		multiplier: multiplier,
	}, nil
}

func (e *Engine) critical(attacker *pokemon.Creature) (bool, error) {
	roll, err := e.random.IntBetween(1, CriticalRollSides)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll critical hit")
	}
	speed := attacker.StagedValue(pokemon.StatSpeed, pokemon.StagedSpeed)
	return float64(roll) <= math.Floor(speed/2), nil
}

// attackAndDefense picks the staged stats a damaging move compares. Special
// moves read the defender's special attack stat scaled by its special defense
// stage.
func attackAndDefense(attacker, defender *pokemon.Creature, category pokemon.Category) (float64, float64) {
	if category == pokemon.CategorySpecial {
		return attacker.StagedValue(pokemon.StatSpecialAttack, pokemon.StagedSpecialAttack),
			defender.StagedValue(pokemon.StatSpecialAttack, pokemon.StagedSpecialDefense)
	}
	return attacker.StagedValue(pokemon.StatAttack, pokemon.StagedAttack),
		defender.StagedValue(pokemon.StatDefense, pokemon.StagedDefense)
}

// ResolveFlee rolls one escape attempt of fleeing away from opposing. The
// odds use raw speed stats, stages do not apply.
func (e *Engine) ResolveFlee(fleeing, opposing *pokemon.Creature) (*FleeResult, error) {
	opposingSpeed := opposing.Stat(pokemon.StatSpeed)
	if opposingSpeed <= 0 {
		return nil, errors.InvariantViolationf("creature %s has speed %d", opposing.ID(), opposingSpeed)
	}

	odds := math.Mod(float64(fleeing.Stat(pokemon.StatSpeed)*128)/float64(opposingSpeed)+30, 256)
	roll, err := e.random.IntBetween(0, 255)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll escape")
	}

	return &FleeResult{
		CreatureID: fleeing.ID(),
		Odds:       odds,
		Roll:       roll,
		Escaped:    odds > float64(roll),
	}, nil
}

// ExperienceYield returns the experience for defeating a creature
func ExperienceYield(defeated *pokemon.Creature, wild bool) int {
	multiplier := TrainerExperienceMultiplier
	if wild {
		multiplier = WildExperienceMultiplier
	}
	base := float64(defeated.Species().BaseExperience)
	return int(math.Floor(multiplier * base * float64(defeated.Level()) / 7))
}

// FirstToAct returns the side whose action resolves first. RUN and SHIFT
// resolve before FIGHT, the player first when both sides pick one. Between two
// FIGHT actions the higher staged speed goes first and the opponent wins ties.
func FirstToAct(player, opponent *pokemon.Creature, playerAction, opponentAction Action) SideID {
	switch {
	case playerAction.preempts():
		return SidePlayer
	case opponentAction.preempts():
		return SideOpponent
	}

	playerSpeed := player.StagedValue(pokemon.StatSpeed, pokemon.StagedSpeed)
	opponentSpeed := opponent.StagedValue(pokemon.StatSpeed, pokemon.StagedSpeed)
	if playerSpeed > opponentSpeed {
		return SidePlayer
	}
	return SideOpponent
}
