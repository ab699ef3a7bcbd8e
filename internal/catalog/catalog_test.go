package catalog_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite

	catalog *catalog.Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupSuite() {
	c, err := catalog.LoadDefault()
	s.Require().NoError(err)
	s.catalog = c
}

func (s *CatalogTestSuite) TestChartMatchesKnownRelations() {
	chart := s.catalog.Chart()

	s.Equal(2.0, chart.Effectiveness(pokemon.TypeWater, []pokemon.Type{pokemon.TypeFire}))
	s.Equal(0.5, chart.Effectiveness(pokemon.TypeFire, []pokemon.Type{pokemon.TypeWater}))
	s.Equal(0.0, chart.Effectiveness(pokemon.TypeElectric, []pokemon.Type{pokemon.TypeGround}))
	s.Equal(0.0, chart.Effectiveness(pokemon.TypeNormal, []pokemon.Type{pokemon.TypeGhost, pokemon.TypePoison}))
	s.Equal(4.0, chart.Effectiveness(pokemon.TypeWater, []pokemon.Type{pokemon.TypeRock, pokemon.TypeGround}))
	s.Equal(0.25, chart.Effectiveness(pokemon.TypeGrass, []pokemon.Type{pokemon.TypeFire, pokemon.TypeDragon}))
	s.Equal(1.0, chart.Effectiveness(pokemon.TypeFire, []pokemon.Type{pokemon.TypeNormal}))
	// relations are directed
	s.Equal(0.0, chart.Effectiveness(pokemon.TypeGhost, []pokemon.Type{pokemon.TypeNormal}))
	s.Equal(0.0, chart.Effectiveness(pokemon.TypeRock, []pokemon.Type{pokemon.TypeDark}))
}

func (s *CatalogTestSuite) TestLookups() {
	bulbasaur, err := s.catalog.SpeciesByID("BULBASAUR")
	s.Require().NoError(err)
	s.Equal([]pokemon.Type{pokemon.TypeGrass, pokemon.TypePoison}, bulbasaur.Types)
	s.Equal(45, bulbasaur.BaseStats[pokemon.StatHP])
	s.Equal(pokemon.CurveMediumSlow, bulbasaur.Curve)
	s.Equal(1, bulbasaur.Learnset[0].Level)
	s.Len(bulbasaur.MovesAt(13), 2)

	swift, err := s.catalog.MoveByID("SWIFT")
	s.Require().NoError(err)
	s.Nil(swift.Accuracy)
	s.Equal(pokemon.CategorySpecial, swift.Category)

	growl, err := s.catalog.MoveByID("GROWL")
	s.Require().NoError(err)
	s.Equal([]pokemon.StageDelta{{Stat: pokemon.StagedAttack, Delta: -1}}, growl.StageEffects())

	ember, err := s.catalog.MoveByID("EMBER")
	s.Require().NoError(err)
	s.Require().NotNil(ember.Effects)
	s.Equal(pokemon.StatusBurn, ember.Effects.Status.Condition)

	_, err = s.catalog.SpeciesByID("MISSINGNO")
	s.True(errors.IsNotFound(err))
	_, err = s.catalog.MoveByID("SPLASH")
	s.True(errors.IsNotFound(err))
}

func (s *CatalogTestSuite) TestSharedDefinitions() {
	bulbasaur, err := s.catalog.SpeciesByID("BULBASAUR")
	s.Require().NoError(err)
	tackle, err := s.catalog.MoveByID("TACKLE")
	s.Require().NoError(err)

	s.Same(tackle, bulbasaur.Learnset[0].Moves[0])
}

func (s *CatalogTestSuite) TestZones() {
	s.Equal([]string{"ROCK_TUNNEL", "ROUTE_1", "VIRIDIAN_FOREST"}, s.catalog.ZoneIDs())

	zone, err := s.catalog.Zone("ROUTE_1")
	s.Require().NoError(err)
	s.Equal(0.2, zone.EncounterRate)
	s.Require().Len(zone.Encounters, 2)
	s.Equal("PIDGEY", zone.Encounters[0].Species.ID)

	_, err = s.catalog.Zone("CERULEAN_CAVE")
	s.True(errors.IsNotFound(err))
}

func (s *CatalogTestSuite) TestEverySpeciesHasAStartingMove() {
	for _, id := range s.catalog.SpeciesIDs() {
		species, err := s.catalog.SpeciesByID(id)
		s.Require().NoError(err)
		s.NotEmpty(species.DefaultMoves(1), id)
	}
}

const validTypes = `
NORMAL:
  no_effect: [GHOST]
`

const validMoves = `
- id: TACKLE
  type: NORMAL
  category: PHYSICAL
  power: 40
  accuracy: 100
  default_pp: 35
`

const validSpecies = `
- id: RATTATA
  types: [NORMAL]
  base_stats: {HP: 30, ATTACK: 56, DEFENSE: 35, SPECIAL_ATTACK: 25, SPECIAL_DEFENSE: 35, SPEED: 72}
  base_experience: 51
  curve: MEDIUM_FAST
  learnset:
    1: [TACKLE]
`

const validZones = `
- id: ROUTE_1
  encounter_rate: 0.2
  encounters:
    - {species: RATTATA, weight: 1, min_level: 2, max_level: 4}
`

func files(types, moves, species, zones string) fstest.MapFS {
	return fstest.MapFS{
		catalog.TypesFile:   {Data: []byte(types)},
		catalog.MovesFile:   {Data: []byte(moves)},
		catalog.SpeciesFile: {Data: []byte(species)},
		catalog.ZonesFile:   {Data: []byte(zones)},
	}
}

func (s *CatalogTestSuite) TestLoadMinimal() {
	c, err := catalog.Load(files(validTypes, validMoves, validSpecies, validZones))
	s.Require().NoError(err)
	s.Equal([]string{"RATTATA"}, c.SpeciesIDs())
	s.Equal([]string{"TACKLE"}, c.MoveIDs())
}

func (s *CatalogTestSuite) TestLoadRejectsBadData() {
	testCases := []struct {
		name    string
		fsys    fstest.MapFS
		message string
	}{
		{
			name: "unknown field",
			fsys: files(validTypes, validMoves+"  priority: 1\n", validSpecies, validZones),
		},
		{
			name: "accuracy above 100",
			fsys: files(validTypes, `
- id: TACKLE
  type: NORMAL
  category: PHYSICAL
  power: 40
  accuracy: 101
  default_pp: 35
`, validSpecies, validZones),
			message: "accuracy 101",
		},
		{
			name: "unknown category",
			fsys: files(validTypes, `
- id: TACKLE
  type: NORMAL
  category: MAGIC
  power: 40
  default_pp: 35
`, validSpecies, validZones),
			message: "unknown category",
		},
		{
			name: "three types",
			fsys: files(validTypes, validMoves, `
- id: RATTATA
  types: [NORMAL, FIRE, WATER]
  base_stats: {HP: 30, ATTACK: 56, DEFENSE: 35, SPECIAL_ATTACK: 25, SPECIAL_DEFENSE: 35, SPEED: 72}
  base_experience: 51
  curve: MEDIUM_FAST
  learnset:
    1: [TACKLE]
`, validZones),
			message: "one or two types",
		},
		{
			name: "unknown move in learnset",
			fsys: files(validTypes, validMoves, `
- id: RATTATA
  types: [NORMAL]
  base_stats: {HP: 30, ATTACK: 56, DEFENSE: 35, SPECIAL_ATTACK: 25, SPECIAL_DEFENSE: 35, SPEED: 72}
  base_experience: 51
  curve: MEDIUM_FAST
  learnset:
    1: [HYPER_FANG]
`, validZones),
			message: "unknown move HYPER_FANG",
		},
		{
			name:    "unknown species in zone",
			fsys:    files(validTypes, validMoves, validSpecies, "- {id: ROUTE_2, encounter_rate: 0.2, encounters: [{species: PIDGEY, weight: 1, min_level: 2, max_level: 3}]}\n"),
			message: "unknown species PIDGEY",
		},
		{
			name:    "unknown type in chart",
			fsys:    files("NORMAL:\n  no_effect: [SHADOW]\n", validMoves, validSpecies, validZones),
			message: "SHADOW",
		},
		{
			name: "missing file",
			fsys: fstest.MapFS{catalog.TypesFile: {Data: []byte(validTypes)}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := catalog.Load(tc.fsys)
			s.Require().Error(err)
			s.True(errors.IsInvalidConfiguration(err), err.Error())
			if tc.message != "" {
				s.Contains(err.Error(), tc.message)
			}
		})
	}
}
