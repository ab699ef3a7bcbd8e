package creatures_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
	"github.com/KirkDiggler/rpg-battle/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite

	ctx     context.Context
	mr      *miniredis.Miniredis
	clock   *clock.Fixed
	catalog *catalog.Catalog
	repo    creatures.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupSuite() {
	s.catalog = testutils.Catalog(s.T())
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr
	s.ctx = context.Background()
	s.clock = clock.NewFixed(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	repo, err := creatures.NewRedis(&creatures.RedisConfig{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) create(id, species, owner string) *creatures.Record {
	out, err := s.repo.Create(s.ctx, creatures.CreateInput{
		OwnerID:  owner,
		Creature: testutils.CreatureData(s.T(), s.catalog, id, species, 5),
	})
	s.Require().NoError(err)
	return out.Record
}

func (s *RedisRepositoryTestSuite) TestNewRedisRequiresClient() {
	_, err := creatures.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = creatures.NewRedis(&creatures.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created := s.create("c-1", "PIKACHU", testutils.TestOwnerID)
	s.Equal(testutils.TestOwnerID, created.OwnerID)
	s.True(created.CreatedAt.Equal(s.clock.Now()))

	s.True(s.mr.Exists("creature:c-1"))
	members, err := s.mr.Members("creature:owner:" + testutils.TestOwnerID)
	s.Require().NoError(err)
	s.Equal([]string{"c-1"}, members)

	got, err := s.repo.Get(s.ctx, creatures.GetInput{ID: "c-1"})
	s.Require().NoError(err)
	s.Equal(created.Creature, got.Record.Creature)
	s.Equal(testutils.TestOwnerID, got.Record.OwnerID)
	s.True(got.Record.UpdatedAt.Equal(s.clock.Now()))
}

func (s *RedisRepositoryTestSuite) TestCreateRejects() {
	s.create("c-1", "PIKACHU", testutils.TestOwnerID)

	testCases := []struct {
		name  string
		input creatures.CreateInput
		check func(error) bool
	}{
		{
			name:  "nil creature",
			input: creatures.CreateInput{OwnerID: testutils.TestOwnerID},
			check: errors.IsInvalidArgument,
		},
		{
			name: "missing owner",
			input: creatures.CreateInput{
				Creature: testutils.CreatureData(s.T(), s.catalog, "c-2", "PIKACHU", 5),
			},
			check: errors.IsInvalidArgument,
		},
		{
			name: "duplicate id",
			input: creatures.CreateInput{
				OwnerID:  testutils.TestOtherOwnerID,
				Creature: testutils.CreatureData(s.T(), s.catalog, "c-1", "PIDGEY", 5),
			},
			check: errors.IsAlreadyExists,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), err.Error())
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, creatures.GetInput{ID: "nope"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, creatures.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateKeepsOwnerAndCreatedAt() {
	created := s.create("c-1", "PIKACHU", testutils.TestOwnerID)
	s.clock.Advance(time.Minute)

	data := testutils.CreatureData(s.T(), s.catalog, "c-1", "PIKACHU", 5)
	data.HP = 3
	out, err := s.repo.Update(s.ctx, creatures.UpdateInput{Creature: data})
	s.Require().NoError(err)
	s.Equal(testutils.TestOwnerID, out.Record.OwnerID)
	s.True(out.Record.CreatedAt.Equal(created.CreatedAt))
	s.True(out.Record.UpdatedAt.Equal(s.clock.Now()))

	got, err := s.repo.Get(s.ctx, creatures.GetInput{ID: "c-1"})
	s.Require().NoError(err)
	s.Equal(3, got.Record.Creature.HP)

	missing := testutils.CreatureData(s.T(), s.catalog, "c-9", "PIKACHU", 5)
	_, err = s.repo.Update(s.ctx, creatures.UpdateInput{Creature: missing})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.create("c-1", "PIKACHU", testutils.TestOwnerID)

	_, err := s.repo.Delete(s.ctx, creatures.DeleteInput{ID: "c-1"})
	s.Require().NoError(err)
	s.False(s.mr.Exists("creature:c-1"))

	list, err := s.repo.ListByOwner(s.ctx, creatures.ListByOwnerInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Empty(list.Records)

	_, err = s.repo.Delete(s.ctx, creatures.DeleteInput{ID: "c-1"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListByOwnerOldestFirst() {
	s.create("c-b", "PIKACHU", testutils.TestOwnerID)
	s.clock.Advance(time.Second)
	s.create("c-a", "PIDGEY", testutils.TestOwnerID)
	s.create("c-z", "RATTATA", testutils.TestOtherOwnerID)

	list, err := s.repo.ListByOwner(s.ctx, creatures.ListByOwnerInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Require().Len(list.Records, 2)
	s.Equal("c-b", list.Records[0].Creature.ID)
	s.Equal("c-a", list.Records[1].Creature.ID)

	_, err = s.repo.ListByOwner(s.ctx, creatures.ListByOwnerInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestListByOwnerCleansDanglingIndex() {
	s.create("c-1", "PIKACHU", testutils.TestOwnerID)
	_, err := s.mr.SAdd("creature:owner:"+testutils.TestOwnerID, "ghost")
	s.Require().NoError(err)

	list, err := s.repo.ListByOwner(s.ctx, creatures.ListByOwnerInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Len(list.Records, 1)

	members, err := s.mr.Members("creature:owner:" + testutils.TestOwnerID)
	s.Require().NoError(err)
	s.Equal([]string{"c-1"}, members)
}
