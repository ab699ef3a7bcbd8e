package battle_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type EngineTestSuite struct {
	suite.Suite

	script *random.Scripted
	engine *battle.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.script = random.NewScripted()
	s.engine = s.newEngine(s.script)
}

func (s *EngineTestSuite) newEngine(src random.Source) *battle.Engine {
	engine, err := battle.NewEngine(&battle.Config{Random: src, Chart: testChart()})
	s.Require().NoError(err)
	return engine
}

func (s *EngineTestSuite) assertScriptDrained() {
	ints, floats := s.script.Remaining()
	s.Zero(ints, "unused int draws")
	s.Zero(floats, "unused float draws")
}

func (s *EngineTestSuite) TestNewEngineRequiresRandomAndChart() {
	_, err := battle.NewEngine(&battle.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Random")
	s.Contains(err.Error(), "Chart")

	_, err = battle.NewEngine(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestPhysicalDamage() {
	attacker := mustCreature("a", normalmon)
	defender := mustCreature("d", normalmon)
	s.Require().Equal(30, defender.HP())
	s.script.QueueInts(50, 200).QueueFloats(1.0)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	// (2*10/5+2) * 40 * 13/13 / 50 + 5 = 9.8
	s.False(result.Failed)
	s.False(result.Critical)
	s.Equal(10, result.Damage)
	s.Equal(-10, result.HPDelta)
	s.Equal(1.0, result.Multiplier)
	s.Equal(pokemon.EffectivenessNormal, result.Effectiveness)
	s.Equal(20, defender.HP())
	s.Equal(34, attacker.Move(0).CurrentPP)
	s.False(result.DefenderFainted)
	s.assertScriptDrained()
}

func (s *EngineTestSuite) TestDamageFactorRoundsHalfToEven() {
	attacker := mustCreature("a", normalmon)
	defender := mustCreature("d", normalmon)
	s.script.QueueInts(50, 200).QueueFloats(0.85)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	// 9.8 * 0.85 = 8.33
	s.Equal(8, result.Damage)
}

func (s *EngineTestSuite) TestCriticalHit() {
	attacker := mustCreature("a", normalmon)
	defender := mustCreature("d", normalmon)
	// speed 13 crits on rolls up to floor(13/2)
	s.script.QueueInts(50, 6).QueueFloats(1.0)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	s.True(result.Critical)
	s.Equal(15, result.Damage)
	s.assertScriptDrained()

	s.script.QueueInts(50, 7).QueueFloats(1.0)
	result, err = s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)
	s.False(result.Critical)
}

func (s *EngineTestSuite) TestMissSpendsPPWithoutFurtherDraws() {
	attacker := mustCreature("a", normalmon, withMoves(pokemon.NewLearnedMove(wildSwing)))
	defender := mustCreature("d", normalmon)
	s.script.QueueInts(51)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	s.True(result.Failed)
	s.Zero(result.Damage)
	s.Equal(30, defender.HP())
	s.Equal(9, attacker.Move(0).CurrentPP)
	s.assertScriptDrained()
}

func (s *EngineTestSuite) TestAccuracyStageScalesThreshold() {
	attacker := mustCreature("a", normalmon, withMoves(pokemon.NewLearnedMove(wildSwing)))
	defender := mustCreature("d", normalmon)
	attacker.ApplyStageDelta(pokemon.StagedAccuracy, 3)

	// 50 * 6/3 = 100
	s.script.QueueInts(100, 200).QueueFloats(1.0)
	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)
	s.False(result.Failed)

	attacker.ApplyStageDelta(pokemon.StagedAccuracy, -6)
	// 50 * 3/6 = 25
	s.script.QueueInts(26)
	result, err = s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)
	s.True(result.Failed)
	s.assertScriptDrained()
}

func (s *EngineTestSuite) TestZeroAccuracyAlwaysMisses() {
	engine := s.newEngine(random.NewSeededSource(11))
	attacker := mustCreature("a", normalmon, withMoves(&pokemon.LearnedMove{Move: neverHits, PP: 10000, CurrentPP: 10000}))
	defender := mustCreature("d", normalmon)

	for i := 0; i < 10000; i++ {
		result, err := engine.ResolveFight(attacker, defender, 0)
		s.Require().NoError(err)
		s.Require().True(result.Failed)
	}
	s.Equal(30, defender.HP())
	s.Zero(attacker.Move(0).CurrentPP)
}

func (s *EngineTestSuite) TestNilAccuracyNeverMisses() {
	attacker := mustCreature("a", normalmon, withMoves(pokemon.NewLearnedMove(swift)))
	defender := mustCreature("d", normalmon)
	attacker.ApplyStageDelta(pokemon.StagedAccuracy, -6)
	// no accuracy draw: crit then damage factor
	s.script.QueueInts(200).QueueFloats(1.0)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	s.False(result.Failed)
	s.Positive(result.Damage)
	s.assertScriptDrained()
}

func (s *EngineTestSuite) TestNoEffectDealsZeroDamage() {
	attacker := mustCreature("a", normalmon)
	defender := mustCreature("d", spook)
	s.script.QueueInts(50, 200).QueueFloats(1.0)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	s.False(result.Failed)
	s.Zero(result.Damage)
	s.Zero(result.Multiplier)
	s.Equal(pokemon.EffectivenessNone, result.Effectiveness)
	s.Equal(30, defender.HP())
	s.Equal(34, attacker.Move(0).CurrentPP)
	s.assertScriptDrained()
}

func (s *EngineTestSuite) TestDamageIsAtLeastOne() {
	engine := s.newEngine(random.NewSeededSource(5))
	attacker := mustCreature("a", normalmon, withLevel(1),
		withMoves(&pokemon.LearnedMove{Move: ember, PP: 500, CurrentPP: 500}))

	fireType := &pokemon.Species{
		ID:             "EMBERLING",
		Types:          []pokemon.Type{pokemon.TypeFire, pokemon.TypeWater},
		BaseStats:      baseStats(50, pokemon.Stats{pokemon.StatSpecialAttack: 255, pokemon.StatHP: 255}),
		BaseExperience: 50,
		Curve:          pokemon.CurveFast,
	}

	for i := 0; i < 500; i++ {
		defender := mustCreature("d", fireType, withLevel(100))
		result, err := engine.ResolveFight(attacker, defender, 0)
		s.Require().NoError(err)
		s.Require().Equal(0.25, result.Multiplier)
		s.Require().GreaterOrEqual(result.Damage, 1)
	}
}

func (s *EngineTestSuite) TestSpecialDefenseUsesSpecialAttackStat() {
	attacker := mustCreature("a", normalmon, withMoves(pokemon.NewLearnedMove(ember)))
	defender := mustCreature("d", sage)
	s.Require().Equal(22, defender.Stat(pokemon.StatSpecialAttack))
	s.Require().Equal(6, defender.Stat(pokemon.StatSpecialDefense))
	s.script.QueueInts(50, 200).QueueFloats(1.0)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	// 6 * 40 * 13/22 / 50 + 5 = 7.84
	s.Equal(8, result.Damage)

	defender.ApplyStageDelta(pokemon.StagedSpecialDefense, 2)
	s.script.QueueInts(50, 200).QueueFloats(1.0)
	result, err = s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	// 6 * 40 * 13/44 / 50 + 5 = 6.42
	s.Equal(6, result.Damage)
}

func (s *EngineTestSuite) TestNegativeStageEffectTargetsDefender() {
	attacker := mustCreature("a", normalmon, withMoves(pokemon.NewLearnedMove(growl)))
	defender := mustCreature("d", normalmon)
	s.script.QueueInts(50)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	s.Zero(result.Damage)
	s.Equal([]battle.StageChange{
		{CreatureID: "d", Stat: pokemon.StagedAttack, Requested: -1, Applied: -1},
	}, result.StageChanges)
	s.Equal(-1, defender.Stage(pokemon.StagedAttack))
	s.Zero(attacker.Stage(pokemon.StagedAttack))
	s.assertScriptDrained()
}

func (s *EngineTestSuite) TestPositiveStageEffectTargetsAttackerAndClamps() {
	attacker := mustCreature("a", normalmon, withMoves(pokemon.NewLearnedMove(swordsDance)))
	defender := mustCreature("d", normalmon)

	applied := []int{2, 2, 2, 0}
	for _, want := range applied {
		result, err := s.engine.ResolveFight(attacker, defender, 0)
		s.Require().NoError(err)
		s.Require().Len(result.StageChanges, 1)
		s.Equal("a", result.StageChanges[0].CreatureID)
		s.Equal(want, result.StageChanges[0].Applied)
	}
	s.Equal(pokemon.MaxStage, attacker.Stage(pokemon.StagedAttack))
	s.Zero(defender.Stage(pokemon.StagedAttack))
	s.assertScriptDrained()
}

func (s *EngineTestSuite) TestFaintAndHPFloor() {
	attacker := mustCreature("a", normalmon)
	defender := mustCreature("d", normalmon, withHP(4))
	s.script.QueueInts(50, 200).QueueFloats(1.0)

	result, err := s.engine.ResolveFight(attacker, defender, 0)
	s.Require().NoError(err)

	s.Equal(10, result.Damage)
	s.Equal(-4, result.HPDelta)
	s.Zero(defender.HP())
	s.True(result.DefenderFainted)
}

func (s *EngineTestSuite) TestInvalidFights() {
	defender := mustCreature("d", normalmon)

	exhausted := mustCreature("a", normalmon, withMoves(&pokemon.LearnedMove{Move: tackle, PP: 35, CurrentPP: 0}))
	_, err := s.engine.ResolveFight(exhausted, defender, 0)
	s.True(errors.IsInvalidAction(err))

	_, err = s.engine.ResolveFight(exhausted, defender, 3)
	s.True(errors.IsInvalidAction(err))

	fainted := mustCreature("f", normalmon, withHP(0))
	_, err = s.engine.ResolveFight(fainted, defender, 0)
	s.True(errors.IsInvalidAction(err))

	s.Equal(30, defender.HP())
}

func (s *EngineTestSuite) TestFleeEqualSpeed() {
	fleeing := mustCreature("a", normalmon)
	opposing := mustCreature("d", normalmon)

	// 13*128/13 + 30 = 158
	s.script.QueueInts(157)
	result, err := s.engine.ResolveFlee(fleeing, opposing)
	s.Require().NoError(err)
	s.Equal(158.0, result.Odds)
	s.True(result.Escaped)

	s.script.QueueInts(158)
	result, err = s.engine.ResolveFlee(fleeing, opposing)
	s.Require().NoError(err)
	s.False(result.Escaped)
}

func (s *EngineTestSuite) TestFleeOddsWrapAround() {
	fleeing := mustCreature("a", speedy)
	opposing := mustCreature("d", normalmon)
	s.script.QueueInts(0)

	result, err := s.engine.ResolveFlee(fleeing, opposing)
	s.Require().NoError(err)

	// 22*128/13 + 30 = 246.6; stays under 256
	s.InDelta(246.615, result.Odds, 0.001)
	s.True(result.Escaped)
}

func (s *EngineTestSuite) TestFleeRateConverges() {
	engine := s.newEngine(random.NewSeededSource(2024))
	fleeing := mustCreature("a", normalmon)
	opposing := mustCreature("d", normalmon)

	const trials = 20000
	escaped := 0
	for i := 0; i < trials; i++ {
		result, err := engine.ResolveFlee(fleeing, opposing)
		s.Require().NoError(err)
		if result.Escaped {
			escaped++
		}
	}

	s.InDelta(158.0/256.0, float64(escaped)/trials, 0.02)
}

func (s *EngineTestSuite) TestExperienceYield() {
	defeated := mustCreature("d", normalmon)

	s.Equal(142, battle.ExperienceYield(defeated, true))
	s.Equal(214, battle.ExperienceYield(defeated, false))
}

func (s *EngineTestSuite) TestFirstToAct() {
	slow := mustCreature("slow", normalmon)
	fast := mustCreature("fast", speedy)
	tied := mustCreature("tied", normalmon)

	s.Equal(battle.SidePlayer, battle.FirstToAct(fast, slow, battle.Fight(0), battle.Fight(0)))
	s.Equal(battle.SideOpponent, battle.FirstToAct(slow, fast, battle.Fight(0), battle.Fight(0)))
	s.Equal(battle.SideOpponent, battle.FirstToAct(slow, tied, battle.Fight(0), battle.Fight(0)),
		"ties go to the opponent")

	s.Equal(battle.SidePlayer, battle.FirstToAct(slow, fast, battle.Run(), battle.Fight(0)))
	s.Equal(battle.SideOpponent, battle.FirstToAct(fast, slow, battle.Fight(0), battle.Shift(1)))
	s.Equal(battle.SidePlayer, battle.FirstToAct(slow, fast, battle.Shift(1), battle.Run()))

	slow.ApplyStageDelta(pokemon.StagedSpeed, 2)
	// 13 * 2 = 26 beats 22
	s.Equal(battle.SidePlayer, battle.FirstToAct(slow, fast, battle.Fight(0), battle.Fight(0)))
}
