// Package pokemon holds the creature battle data model: types, stats, moves,
// species and the mutable creature instances the battle engine operates on.
package pokemon

// Type is an elemental type carried by species and moves
type Type string

// Types
const (
	TypeNormal   Type = "NORMAL"
	TypeFire     Type = "FIRE"
	TypeWater    Type = "WATER"
	TypeElectric Type = "ELECTRIC"
	TypeGrass    Type = "GRASS"
	TypeIce      Type = "ICE"
	TypeFighting Type = "FIGHTING"
	TypeFlying   Type = "FLYING"
	TypePoison   Type = "POISON"
	TypeGround   Type = "GROUND"
	TypePsychic  Type = "PSYCHIC"
	TypeRock     Type = "ROCK"
	TypeBug      Type = "BUG"
	TypeDragon   Type = "DRAGON"
	TypeGhost    Type = "GHOST"
	TypeDark     Type = "DARK"
	TypeSteel    Type = "STEEL"
	TypeFairy    Type = "FAIRY"
)

// AllTypes lists every type in canonical order
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypeFlying, TypePoison, TypeGround, TypePsychic, TypeRock,
	TypeBug, TypeDragon, TypeGhost, TypeDark, TypeSteel, TypeFairy,
}

// Valid reports whether t is a known type
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Category decides which stats a move uses, if any
type Category string

// Move categories
const (
	CategoryPhysical Category = "PHYSICAL"
	CategorySpecial  Category = "SPECIAL"
	CategoryStatus   Category = "STATUS"
)

// AllCategories lists every move category
var AllCategories = []Category{CategoryPhysical, CategorySpecial, CategoryStatus}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return c == CategoryPhysical || c == CategorySpecial || c == CategoryStatus
}

// Damaging reports whether moves of this category deal damage
func (c Category) Damaging() bool {
	return c == CategoryPhysical || c == CategorySpecial
}

// Status is a non-volatile status condition. Moves may carry one as data;
// the battle engine does not apply them.
type Status string

// Status conditions
const (
	StatusBurn      Status = "BURN"
	StatusFreeze    Status = "FREEZE"
	StatusParalysis Status = "PARALYSIS"
	StatusPoison    Status = "POISON"
	StatusSleep     Status = "SLEEP"
)

// AllStatuses lists every status condition
var AllStatuses = []Status{StatusBurn, StatusFreeze, StatusParalysis, StatusPoison, StatusSleep}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ExperienceCurve names the growth function mapping level to cumulative experience
type ExperienceCurve string

// Experience curves
const (
	CurveFast       ExperienceCurve = "FAST"
	CurveMediumFast ExperienceCurve = "MEDIUM_FAST"
	CurveMediumSlow ExperienceCurve = "MEDIUM_SLOW"
	CurveSlow       ExperienceCurve = "SLOW"
)

// AllCurves lists every experience curve
var AllCurves = []ExperienceCurve{CurveFast, CurveMediumFast, CurveMediumSlow, CurveSlow}

// Valid reports whether c is a known curve
func (c ExperienceCurve) Valid() bool {
	for _, known := range AllCurves {
		if c == known {
			return true
		}
	}
	return false
}
