// Package catalog loads the immutable game data: the type chart, moves,
// species and wild zones. Data lives in YAML files embedded in the binary;
// loading validates everything up front and fails as a whole.
package catalog

import (
	"embed"
	"io/fs"
	"sort"

	"github.com/KirkDiggler/rpg-battle/internal/engine/wild"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

//go:embed data/*.yaml
var embedded embed.FS

// Data file names
const (
	TypesFile   = "types.yaml"
	MovesFile   = "moves.yaml"
	SpeciesFile = "species.yaml"
	ZonesFile   = "zones.yaml"
)

// Catalog resolves catalog ids to shared, read-only definitions
type Catalog struct {
	chart   *pokemon.TypeChart
	moves   map[string]*pokemon.Move
	species map[string]*pokemon.Species
	zones   map[string]*wild.Zone
}

var _ pokemon.Lookup = (*Catalog)(nil)

// LoadDefault loads the catalog embedded in the binary
func LoadDefault() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded catalog")
	}
	return Load(sub)
}

// Load reads and validates the catalog files found at the root of fsys
func Load(fsys fs.FS) (*Catalog, error) {
	var doc document
	if err := decodeFile(fsys, TypesFile, &doc.Types); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, MovesFile, &doc.Moves); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, SpeciesFile, &doc.Species); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, ZonesFile, &doc.Zones); err != nil {
		return nil, err
	}

	return build(&doc)
}

// Chart returns the type chart
func (c *Catalog) Chart() *pokemon.TypeChart {
	return c.chart
}

// MoveByID returns a move definition
func (c *Catalog) MoveByID(id string) (*pokemon.Move, error) {
	move, ok := c.moves[id]
	if !ok {
		return nil, errors.NotFoundf("move %s not found", id)
	}
	return move, nil
}

// SpeciesByID returns a species definition
func (c *Catalog) SpeciesByID(id string) (*pokemon.Species, error) {
	species, ok := c.species[id]
	if !ok {
		return nil, errors.NotFoundf("species %s not found", id)
	}
	return species, nil
}

// Zone returns a wild zone
func (c *Catalog) Zone(id string) (*wild.Zone, error) {
	zone, ok := c.zones[id]
	if !ok {
		return nil, errors.NotFoundf("zone %s not found", id)
	}
	return zone, nil
}

// SpeciesIDs returns every species id, sorted
func (c *Catalog) SpeciesIDs() []string {
	return sortedKeys(c.species)
}

// MoveIDs returns every move id, sorted
func (c *Catalog) MoveIDs() []string {
	return sortedKeys(c.moves)
}

// ZoneIDs returns every zone id, sorted
func (c *Catalog) ZoneIDs() []string {
	return sortedKeys(c.zones)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
