package pokemon

// TypeRelations lists the directed relations of one attacking type
type TypeRelations struct {
	NoEffect       []Type `json:"no_effect,omitempty" yaml:"no_effect,omitempty"`
	NotEffective   []Type `json:"not_effective,omitempty" yaml:"not_effective,omitempty"`
	SuperEffective []Type `json:"super_effective,omitempty" yaml:"super_effective,omitempty"`
}

// TypeChart holds the damage relations between attacking and defending types.
// Relations are directed and not symmetric.
type TypeChart struct {
	relations map[Type]TypeRelations
}

// NewTypeChart builds a chart from per attacking type relations
func NewTypeChart(relations map[Type]TypeRelations) *TypeChart {
	copied := make(map[Type]TypeRelations, len(relations))
	for t, r := range relations {
		copied[t] = r
	}
	return &TypeChart{relations: copied}
}

// Relations returns the relations of an attacking type
func (c *TypeChart) Relations(attacking Type) TypeRelations {
	return c.relations[attacking]
}

// Effectiveness returns the damage multiplier of an attacking type against a
// creature with the given types. A single immune type zeroes the result.
func (c *TypeChart) Effectiveness(attacking Type, defending []Type) float64 {
	rel := c.relations[attacking]

	multiplier := 1.0
	for _, t := range defending {
		switch {
		case containsType(rel.NoEffect, t):
			return 0
		case containsType(rel.NotEffective, t):
			multiplier *= 0.5
		case containsType(rel.SuperEffective, t):
			multiplier *= 2
		}
	}
	return multiplier
}

func containsType(types []Type, t Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// Effectiveness is the named tier of a damage multiplier
type Effectiveness string

// Effectiveness tiers
const (
	EffectivenessNone    Effectiveness = "NO_EFFECT"
	EffectivenessVeryLow Effectiveness = "VERY_INEFFECTIVE"
	EffectivenessLow     Effectiveness = "NOT_EFFECTIVE"
	EffectivenessNormal  Effectiveness = "NORMAL"
	EffectivenessSuper   Effectiveness = "SUPER_EFFECTIVE"
	EffectivenessExtreme Effectiveness = "EXTREMELY_EFFECTIVE"
)

// EffectivenessTier names a multiplier returned by TypeChart.Effectiveness
func EffectivenessTier(multiplier float64) Effectiveness {
	switch {
	case multiplier <= 0:
		return EffectivenessNone
	case multiplier <= 0.25:
		return EffectivenessVeryLow
	case multiplier < 1:
		return EffectivenessLow
	case multiplier == 1:
		return EffectivenessNormal
	case multiplier < 4:
		return EffectivenessSuper
	default:
		return EffectivenessExtreme
	}
}
