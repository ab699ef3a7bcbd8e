package creature_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/creature"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	battlerepomock "github.com/KirkDiggler/rpg-battle/internal/repositories/battles/mock"
	creaturerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
	creaturerepomock "github.com/KirkDiggler/rpg-battle/internal/repositories/creatures/mock"
	"github.com/KirkDiggler/rpg-battle/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite

	ctrl             *gomock.Controller
	mockCreatureRepo *creaturerepomock.MockRepository
	mockBattleRepo   *battlerepomock.MockRepository
	catalog          *catalog.Catalog
	random           *random.Scripted
	orchestrator     creature.Service
	ctx              context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupSuite() {
	s.catalog = testutils.Catalog(s.T())
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCreatureRepo = creaturerepomock.NewMockRepository(s.ctrl)
	s.mockBattleRepo = battlerepomock.NewMockRepository(s.ctrl)
	s.random = random.NewScripted()
	s.ctx = context.Background()

	orch, err := creature.NewOrchestrator(&creature.Config{
		CreatureRepo: s.mockCreatureRepo,
		BattleRepo:   s.mockBattleRepo,
		Lookup:       s.catalog,
		Random:       s.random,
		IDGenerator:  idgen.NewSequential("creature"),
	})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidatesConfig() {
	_, err := creature.NewOrchestrator(&creature.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "CreatureRepo")
	s.Contains(err.Error(), "IDGenerator")
}

func (s *OrchestratorTestSuite) TestCreateCreature() {
	s.random.QueueInts(31, 30, 29, 28, 27, 26)

	s.mockCreatureRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.CreateInput) (*creaturerepo.CreateOutput, error) {
			s.Equal(testutils.TestOwnerID, input.OwnerID)
			return &creaturerepo.CreateOutput{Record: &creaturerepo.Record{
				OwnerID:  input.OwnerID,
				Creature: input.Creature,
			}}, nil
		})

	out, err := s.orchestrator.CreateCreature(s.ctx, &creature.CreateCreatureInput{
		OwnerID:   testutils.TestOwnerID,
		SpeciesID: "PIKACHU",
		Level:     10,
		Nickname:  "Sparky",
	})
	s.Require().NoError(err)

	data := out.Creature.Creature
	s.Equal("creature_1", data.ID)
	s.Equal("Sparky", data.Nickname)
	s.Equal(10, data.Level)
	s.Equal(31, data.IVs[pokemon.StatHP])
	s.Equal(26, data.IVs[pokemon.StatSpeed])

	var moves []string
	for _, m := range data.Moves {
		moves = append(moves, m.MoveID)
	}
	s.Equal([]string{"THUNDER_SHOCK", "GROWL", "TAIL_WHIP", "THUNDER_WAVE"}, moves)
}

func (s *OrchestratorTestSuite) TestCreatedLevelOneCreatureCanBeHealed() {
	s.random.QueueInts(0, 0, 0, 0, 0, 0)

	var stored *pokemon.CreatureData
	s.mockCreatureRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.CreateInput) (*creaturerepo.CreateOutput, error) {
			stored = input.Creature
			return &creaturerepo.CreateOutput{Record: &creaturerepo.Record{
				OwnerID:  input.OwnerID,
				Creature: input.Creature,
			}}, nil
		})

	_, err := s.orchestrator.CreateCreature(s.ctx, &creature.CreateCreatureInput{
		OwnerID:   testutils.TestOwnerID,
		SpeciesID: "BULBASAUR",
		Level:     1,
	})
	s.Require().NoError(err)
	s.Equal(0, stored.Experience)

	s.expectNoBattle()
	s.mockCreatureRepo.EXPECT().
		ListByOwner(s.ctx, creaturerepo.ListByOwnerInput{OwnerID: testutils.TestOwnerID}).
		Return(&creaturerepo.ListByOwnerOutput{Records: []*creaturerepo.Record{
			{OwnerID: testutils.TestOwnerID, Creature: stored},
		}}, nil)
	s.mockCreatureRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.UpdateInput) (*creaturerepo.UpdateOutput, error) {
			return &creaturerepo.UpdateOutput{Record: &creaturerepo.Record{Creature: input.Creature}}, nil
		})

	out, err := s.orchestrator.HealParty(s.ctx, &creature.HealPartyInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Require().Len(out.Creatures, 1)
	s.Equal(1, out.Creatures[0].Creature.Level)
}

func (s *OrchestratorTestSuite) TestCreateCreatureRejectsBadInput() {
	testCases := []struct {
		name  string
		input *creature.CreateCreatureInput
		check func(error) bool
	}{
		{name: "nil input", check: errors.IsInvalidArgument},
		{
			name:  "missing owner",
			input: &creature.CreateCreatureInput{SpeciesID: "PIKACHU", Level: 5},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "level out of range",
			input: &creature.CreateCreatureInput{OwnerID: testutils.TestOwnerID, SpeciesID: "PIKACHU", Level: 101},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "unknown species",
			input: &creature.CreateCreatureInput{OwnerID: testutils.TestOwnerID, SpeciesID: "MEW", Level: 5},
			check: errors.IsNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.CreateCreature(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), err.Error())
		})
	}
}

func (s *OrchestratorTestSuite) TestGetCreatureNotFound() {
	s.mockCreatureRepo.EXPECT().
		Get(s.ctx, creaturerepo.GetInput{ID: "c-1"}).
		Return(nil, errors.NotFound("creature c-1 not found"))

	_, err := s.orchestrator.GetCreature(s.ctx, &creature.GetCreatureInput{CreatureID: "c-1"})
	s.True(errors.IsNotFound(err))
	s.Equal("c-1", errors.MetaString(err, errors.MetaCreatureID))
}

func (s *OrchestratorTestSuite) TestListCreatures() {
	records := []*creaturerepo.Record{
		{OwnerID: testutils.TestOwnerID, Creature: testutils.CreatureData(s.T(), s.catalog, "c-1", "PIKACHU", 5)},
	}
	s.mockCreatureRepo.EXPECT().
		ListByOwner(s.ctx, creaturerepo.ListByOwnerInput{OwnerID: testutils.TestOwnerID}).
		Return(&creaturerepo.ListByOwnerOutput{Records: records}, nil)

	out, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Equal(records, out.Creatures)
}

func (s *OrchestratorTestSuite) TestHealPartyRestoresHPAndPP() {
	hurt := testutils.Creature(s.T(), s.catalog, "c-1", "PIKACHU", 5)
	hurt.ApplyHPDelta(-10)
	hurt.Move(0).Spend()

	s.mockBattleRepo.EXPECT().
		GetActiveByOwner(s.ctx, battlerepo.GetActiveByOwnerInput{OwnerID: testutils.TestOwnerID}).
		Return(nil, errors.NotFound("no active battle"))
	s.mockCreatureRepo.EXPECT().
		ListByOwner(s.ctx, creaturerepo.ListByOwnerInput{OwnerID: testutils.TestOwnerID}).
		Return(&creaturerepo.ListByOwnerOutput{Records: []*creaturerepo.Record{
			{OwnerID: testutils.TestOwnerID, Creature: hurt.ToData()},
		}}, nil)
	s.mockCreatureRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.UpdateInput) (*creaturerepo.UpdateOutput, error) {
			return &creaturerepo.UpdateOutput{Record: &creaturerepo.Record{Creature: input.Creature}}, nil
		})

	out, err := s.orchestrator.HealParty(s.ctx, &creature.HealPartyInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Require().Len(out.Creatures, 1)

	healed := out.Creatures[0].Creature
	s.Equal(hurt.MaxHP(), healed.HP)
	s.Equal(healed.Moves[0].PP, healed.Moves[0].CurrentPP)
}

func (s *OrchestratorTestSuite) TestHealPartyRefusedDuringBattle() {
	s.mockBattleRepo.EXPECT().
		GetActiveByOwner(s.ctx, battlerepo.GetActiveByOwnerInput{OwnerID: testutils.TestOwnerID}).
		Return(&battlerepo.GetActiveByOwnerOutput{Record: &battlerepo.Record{ID: "b-1"}}, nil)

	_, err := s.orchestrator.HealParty(s.ctx, &creature.HealPartyInput{OwnerID: testutils.TestOwnerID})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("b-1", errors.MetaString(err, errors.MetaBattleID))
}

func (s *OrchestratorTestSuite) expectStored(data *pokemon.CreatureData) {
	s.mockCreatureRepo.EXPECT().
		Get(s.ctx, creaturerepo.GetInput{ID: data.ID}).
		Return(&creaturerepo.GetOutput{Record: &creaturerepo.Record{OwnerID: testutils.TestOwnerID, Creature: data}}, nil)
}

func (s *OrchestratorTestSuite) expectNoBattle() {
	s.mockBattleRepo.EXPECT().
		GetActiveByOwner(s.ctx, battlerepo.GetActiveByOwnerInput{OwnerID: testutils.TestOwnerID}).
		Return(nil, errors.NotFound("no active battle"))
}

func (s *OrchestratorTestSuite) TestLearnMoveReplacesSlot() {
	// a level 16 pikachu knows GROWL, TAIL_WHIP, THUNDER_WAVE, QUICK_ATTACK
	s.expectStored(testutils.CreatureData(s.T(), s.catalog, "c-1", "PIKACHU", 16))
	s.expectNoBattle()
	s.mockCreatureRepo.EXPECT().
		Update(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input creaturerepo.UpdateInput) (*creaturerepo.UpdateOutput, error) {
			return &creaturerepo.UpdateOutput{Record: &creaturerepo.Record{Creature: input.Creature}}, nil
		})

	out, err := s.orchestrator.LearnMove(s.ctx, &creature.LearnMoveInput{
		CreatureID: "c-1",
		MoveID:     "THUNDER_SHOCK",
		Slot:       1,
	})
	s.Require().NoError(err)
	s.Equal("THUNDER_SHOCK", out.Creature.Creature.Moves[1].MoveID)
	s.Equal("GROWL", out.Creature.Creature.Moves[0].MoveID)
}

func (s *OrchestratorTestSuite) TestLearnMoveRefusedDuringBattle() {
	s.expectStored(testutils.CreatureData(s.T(), s.catalog, "c-1", "PIKACHU", 16))
	s.mockBattleRepo.EXPECT().
		GetActiveByOwner(s.ctx, battlerepo.GetActiveByOwnerInput{OwnerID: testutils.TestOwnerID}).
		Return(&battlerepo.GetActiveByOwnerOutput{Record: &battlerepo.Record{ID: "b-1"}}, nil)

	_, err := s.orchestrator.LearnMove(s.ctx, &creature.LearnMoveInput{
		CreatureID: "c-1",
		MoveID:     "THUNDER_SHOCK",
		Slot:       1,
	})
	s.True(errors.IsFailedPrecondition(err))
	s.Equal("b-1", errors.MetaString(err, errors.MetaBattleID))
}

func (s *OrchestratorTestSuite) TestLearnMoveRejectsMovesOutsideLearnset() {
	s.expectStored(testutils.CreatureData(s.T(), s.catalog, "c-1", "PIKACHU", 10))
	s.expectNoBattle()

	_, err := s.orchestrator.LearnMove(s.ctx, &creature.LearnMoveInput{
		CreatureID: "c-1",
		MoveID:     "QUICK_ATTACK",
		Slot:       0,
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestLearnMoveRejectsKnownMove() {
	s.expectStored(testutils.CreatureData(s.T(), s.catalog, "c-1", "PIKACHU", 10))
	s.expectNoBattle()

	_, err := s.orchestrator.LearnMove(s.ctx, &creature.LearnMoveInput{
		CreatureID: "c-1",
		MoveID:     "GROWL",
		Slot:       0,
	})
	s.True(errors.IsAlreadyExists(err))
}
