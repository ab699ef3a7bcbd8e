package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Test owners
const (
	TestOwnerID      = "trainer-red"
	TestOtherOwnerID = "trainer-blue"
)

// Catalog loads the embedded catalog or fails the test
func Catalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.LoadDefault()
	require.NoError(t, err, "failed to load catalog")
	return c
}

// Creature builds a creature of the given species from the catalog with
// zero IVs and its default moveset for level
func Creature(t *testing.T, c *catalog.Catalog, id, speciesID string, level int) *pokemon.Creature {
	t.Helper()

	species, err := c.SpeciesByID(speciesID)
	require.NoError(t, err)

	creature, err := pokemon.NewCreature(&pokemon.CreatureConfig{
		ID:      id,
		Species: species,
		Level:   level,
		Moves:   species.DefaultLearnedMoves(level),
		IVs:     zeroIVs(),
	})
	require.NoError(t, err)
	return creature
}

// CreatureData is Creature as a persisted snapshot
func CreatureData(t *testing.T, c *catalog.Catalog, id, speciesID string, level int) *pokemon.CreatureData {
	t.Helper()
	return Creature(t, c, id, speciesID, level).ToData()
}

func zeroIVs() pokemon.Stats {
	ivs := pokemon.Stats{}
	for _, stat := range pokemon.AllStats {
		ivs[stat] = 0
	}
	return ivs
}
