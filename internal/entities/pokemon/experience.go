package pokemon

import "math"

// MaxLevel is the highest level a creature can reach
const MaxLevel = 100

// ExperienceForLevel returns the cumulative experience required to reach level
func (c ExperienceCurve) ExperienceForLevel(level int) int {
	l := float64(level)
	cube := l * l * l

	switch c {
	case CurveFast:
		return int(math.Floor(4 * cube / 5))
	case CurveMediumFast:
		return int(cube)
	case CurveMediumSlow:
		return int(math.Floor(6.0/5.0*cube - 15*l*l + 100*l - 140))
	case CurveSlow:
		return int(math.Floor(5 * cube / 4))
	default:
		return 0
	}
}
