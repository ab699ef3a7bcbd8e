package catalog

import (
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-battle/internal/engine/wild"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Stat bounds accepted in species data
const (
	minBaseStat = 1
	maxBaseStat = 255
)

type document struct {
	Types   map[pokemon.Type]pokemon.TypeRelations
	Moves   []moveDoc
	Species []speciesDoc
	Zones   []zoneDoc
}

type moveDoc struct {
	ID        string           `yaml:"id"`
	Type      pokemon.Type     `yaml:"type"`
	Category  pokemon.Category `yaml:"category"`
	Power     int              `yaml:"power"`
	Accuracy  *int             `yaml:"accuracy"`
	DefaultPP int              `yaml:"default_pp"`
	Effects   *effectsDoc      `yaml:"effects"`
}

type effectsDoc struct {
	Stages pokemon.Stages `yaml:"stages"`
	Status *statusDoc     `yaml:"status"`
}

type statusDoc struct {
	Condition pokemon.Status `yaml:"condition"`
	Chance    int            `yaml:"chance"`
}

type speciesDoc struct {
	ID             string                  `yaml:"id"`
	Types          []pokemon.Type          `yaml:"types"`
	BaseStats      pokemon.Stats           `yaml:"base_stats"`
	BaseExperience int                     `yaml:"base_experience"`
	Curve          pokemon.ExperienceCurve `yaml:"curve"`
	Learnset       map[int][]string        `yaml:"learnset"`
}

type zoneDoc struct {
	ID            string         `yaml:"id"`
	EncounterRate float64        `yaml:"encounter_rate"`
	Encounters    []encounterDoc `yaml:"encounters"`
}

type encounterDoc struct {
	Species  string `yaml:"species"`
	Weight   int    `yaml:"weight"`
	MinLevel int    `yaml:"min_level"`
	MaxLevel int    `yaml:"max_level"`
}

func decodeFile(fsys fs.FS, name string, out interface{}) error {
	f, err := fsys.Open(name)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidConfiguration, fmt.Sprintf("failed to open %s", name))
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidConfiguration, fmt.Sprintf("failed to decode %s", name))
	}
	return nil
}

// build validates the decoded documents and links every reference. All
// problems are reported together.
func build(doc *document) (*Catalog, error) {
	vb := errors.NewValidationBuilder()

	validateTypes(vb, doc.Types)

	moves := make(map[string]*pokemon.Move, len(doc.Moves))
	for i, md := range doc.Moves {
		field := fmt.Sprintf("moves[%d]", i)
		if md.ID != "" {
			field = "moves." + md.ID
		}
		if _, dup := moves[md.ID]; dup {
			vb.Field(field, "duplicate id")
			continue
		}
		if validateMove(vb, field, &md) {
			moves[md.ID] = toMove(&md)
		}
	}

	species := make(map[string]*pokemon.Species, len(doc.Species))
	for i, sd := range doc.Species {
		field := fmt.Sprintf("species[%d]", i)
		if sd.ID != "" {
			field = "species." + sd.ID
		}
		if _, dup := species[sd.ID]; dup {
			vb.Field(field, "duplicate id")
			continue
		}
		if s, ok := toSpecies(vb, field, &sd, moves); ok {
			species[sd.ID] = s
		}
	}

	zones := make(map[string]*wild.Zone, len(doc.Zones))
	for i, zd := range doc.Zones {
		field := fmt.Sprintf("zones[%d]", i)
		if zd.ID != "" {
			field = "zones." + zd.ID
		}
		if _, dup := zones[zd.ID]; dup {
			vb.Field(field, "duplicate id")
			continue
		}
		if z, ok := toZone(vb, field, &zd, species); ok {
			zones[zd.ID] = z
		}
	}

	if err := vb.BuildWithCode(errors.CodeInvalidConfiguration); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}

	return &Catalog{
		chart:   pokemon.NewTypeChart(doc.Types),
		moves:   moves,
		species: species,
		zones:   zones,
	}, nil
}

func validateTypes(vb *errors.ValidationBuilder, types map[pokemon.Type]pokemon.TypeRelations) {
	if len(types) == 0 {
		vb.RequiredField("types")
		return
	}

	for attacking, rel := range types {
		field := "types." + string(attacking)
		if !attacking.Valid() {
			vb.Field(field, "unknown type")
			continue
		}
		seen := map[pokemon.Type]bool{}
		for _, group := range [][]pokemon.Type{rel.NoEffect, rel.NotEffective, rel.SuperEffective} {
			for _, t := range group {
				if !t.Valid() {
					vb.Fieldf(field, "unknown defending type %s", t)
				}
				if seen[t] {
					vb.Fieldf(field, "defending type %s listed twice", t)
				}
				seen[t] = true
			}
		}
	}
}

func validateMove(vb *errors.ValidationBuilder, field string, md *moveDoc) bool {
	ok := true
	failed := func(format string, args ...interface{}) {
		vb.Fieldf(field, format, args...)
		ok = false
	}

	if md.ID == "" {
		failed("id is required")
	}
	if !md.Type.Valid() {
		failed("unknown type %q", md.Type)
	}
	if !md.Category.Valid() {
		failed("unknown category %q", md.Category)
	}
	if md.Category.Damaging() && md.Power <= 0 {
		failed("damaging move needs a positive power")
	}
	if md.Category == pokemon.CategoryStatus && md.Power != 0 {
		failed("status move cannot have power")
	}
	if md.Accuracy != nil && (*md.Accuracy < 0 || *md.Accuracy > 100) {
		failed("accuracy %d outside [0, 100]", *md.Accuracy)
	}
	if md.DefaultPP <= 0 {
		failed("default_pp must be positive")
	}
	if md.Effects != nil {
		for stat, delta := range md.Effects.Stages {
			if !stat.Valid() {
				failed("unknown staged stat %q", stat)
			}
			if delta == 0 || delta < pokemon.MinStage || delta > pokemon.MaxStage {
				failed("stage delta %d for %s outside [%d, %d] or zero", delta, stat, pokemon.MinStage, pokemon.MaxStage)
			}
		}
		if st := md.Effects.Status; st != nil {
			if !st.Condition.Valid() {
				failed("unknown status %q", st.Condition)
			}
			if st.Chance < 0 || st.Chance > 100 {
				failed("status chance %d outside [0, 100]", st.Chance)
			}
		}
	}

	return ok
}

func toMove(md *moveDoc) *pokemon.Move {
	move := &pokemon.Move{
		ID:        md.ID,
		Type:      md.Type,
		Category:  md.Category,
		Power:     md.Power,
		DefaultPP: md.DefaultPP,
	}
	if md.Accuracy != nil {
		accuracy := *md.Accuracy
		move.Accuracy = &accuracy
	}
	if md.Effects != nil {
		move.Effects = &pokemon.MoveEffects{Stages: md.Effects.Stages.Clone()}
		if st := md.Effects.Status; st != nil {
			move.Effects.Status = &pokemon.StatusEffect{Condition: st.Condition, Chance: st.Chance}
		}
	}
	return move
}

func toSpecies(vb *errors.ValidationBuilder, field string, sd *speciesDoc, moves map[string]*pokemon.Move) (*pokemon.Species, bool) {
	ok := true
	failed := func(format string, args ...interface{}) {
		vb.Fieldf(field, format, args...)
		ok = false
	}

	if sd.ID == "" {
		failed("id is required")
	}
	if len(sd.Types) < 1 || len(sd.Types) > 2 {
		failed("must have one or two types, got %d", len(sd.Types))
	}
	for _, t := range sd.Types {
		if !t.Valid() {
			failed("unknown type %q", t)
		}
	}
	if len(sd.Types) == 2 && sd.Types[0] == sd.Types[1] {
		failed("type %s listed twice", sd.Types[0])
	}
	for _, stat := range pokemon.AllStats {
		base, present := sd.BaseStats[stat]
		if !present {
			failed("missing base stat %s", stat)
			continue
		}
		if base < minBaseStat || base > maxBaseStat {
			failed("base stat %s=%d outside [%d, %d]", stat, base, minBaseStat, maxBaseStat)
		}
	}
	for stat := range sd.BaseStats {
		if !stat.Valid() {
			failed("unknown stat %q", stat)
		}
	}
	if sd.BaseExperience <= 0 {
		failed("base_experience must be positive")
	}
	if !sd.Curve.Valid() {
		failed("unknown curve %q", sd.Curve)
	}

	levels := make([]int, 0, len(sd.Learnset))
	for level := range sd.Learnset {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	learnset := make([]pokemon.LevelMoves, 0, len(levels))
	for _, level := range levels {
		if level < 1 || level > pokemon.MaxLevel {
			failed("learnset level %d outside [1, %d]", level, pokemon.MaxLevel)
			continue
		}
		entry := pokemon.LevelMoves{Level: level}
		for _, id := range sd.Learnset[level] {
			move, found := moves[id]
			if !found {
				failed("learnset level %d references unknown move %s", level, id)
				continue
			}
			entry.Moves = append(entry.Moves, move)
		}
		learnset = append(learnset, entry)
	}

	if !ok {
		return nil, false
	}
	return &pokemon.Species{
		ID:             sd.ID,
		Types:          append([]pokemon.Type(nil), sd.Types...),
		BaseStats:      sd.BaseStats.Clone(),
		BaseExperience: sd.BaseExperience,
		Curve:          sd.Curve,
		Learnset:       learnset,
	}, true
}

func toZone(vb *errors.ValidationBuilder, field string, zd *zoneDoc, species map[string]*pokemon.Species) (*wild.Zone, bool) {
	zone := &wild.Zone{ID: zd.ID, EncounterRate: zd.EncounterRate}

	ok := true
	for _, ed := range zd.Encounters {
		s, found := species[ed.Species]
		if !found {
			vb.Fieldf(field, "references unknown species %s", ed.Species)
			ok = false
			continue
		}
		zone.Encounters = append(zone.Encounters, wild.Encounter{
			Species:  s,
			Weight:   ed.Weight,
			MinLevel: ed.MinLevel,
			MaxLevel: ed.MaxLevel,
		})
	}
	if !ok {
		return nil, false
	}

	if err := zone.Validate(); err != nil {
		vb.Field(field, errors.MessageOf(err))
		return nil, false
	}
	return zone, true
}
