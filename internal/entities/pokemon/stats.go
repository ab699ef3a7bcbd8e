package pokemon

import "math"

// Stat is one of the six permanent creature stats
type Stat string

// Stats
const (
	StatHP             Stat = "HP"
	StatAttack         Stat = "ATTACK"
	StatDefense        Stat = "DEFENSE"
	StatSpecialAttack  Stat = "SPECIAL_ATTACK"
	StatSpecialDefense Stat = "SPECIAL_DEFENSE"
	StatSpeed          Stat = "SPEED"
)

// AllStats lists every stat in canonical order
var AllStats = []Stat{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// Valid reports whether s is a known stat
func (s Stat) Valid() bool {
	for _, known := range AllStats {
		if s == known {
			return true
		}
	}
	return false
}

// StagedStat is a stat that battle stages can modify. HP has no stage;
// accuracy has one.
type StagedStat string

// Staged stats
const (
	StagedAttack         StagedStat = "ATTACK"
	StagedDefense        StagedStat = "DEFENSE"
	StagedSpecialAttack  StagedStat = "SPECIAL_ATTACK"
	StagedSpecialDefense StagedStat = "SPECIAL_DEFENSE"
	StagedSpeed          StagedStat = "SPEED"
	StagedAccuracy       StagedStat = "ACCURACY"
)

// AllStagedStats lists every staged stat in canonical order
var AllStagedStats = []StagedStat{
	StagedAttack, StagedDefense, StagedSpecialAttack, StagedSpecialDefense, StagedSpeed, StagedAccuracy,
}

// Valid reports whether s is a known staged stat
func (s StagedStat) Valid() bool {
	for _, known := range AllStagedStats {
		if s == known {
			return true
		}
	}
	return false
}

// Stage bounds
const (
	MinStage = -6
	MaxStage = 6
)

// IV bounds
const (
	MinIV = 0
	MaxIV = 31
)

// Stats maps each stat to a value (base stats, IVs, effective stats or deltas)
type Stats map[Stat]int

// Clone returns a copy of s
func (s Stats) Clone() Stats {
	if s == nil {
		return nil
	}
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Stages maps each staged stat to its current stage
type Stages map[StagedStat]int

// Clone returns a copy of s
func (s Stages) Clone() Stages {
	out := make(Stages, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// EffectiveStat computes a stat value from its base value, individual value
// and the creature level.
//
//	HP:     floor((2*base + iv) * level / 100 + level + 10)
//	others: floor(((2*base + iv) * level / 100 + 5) * 0.9)
func EffectiveStat(stat Stat, level, base, iv int) int {
	scaled := float64((2*base+iv)*level) / 100
	if stat == StatHP {
		return int(math.Floor(scaled + float64(level) + 10))
	}
	return int(math.Floor((scaled + 5) * 0.9))
}

// ClampStage bounds a stage to [MinStage, MaxStage]
func ClampStage(stage int) int {
	if stage < MinStage {
		return MinStage
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}

// StageMultiplier returns the multiplier for a stage. Accuracy uses a ladder
// based on 3 (3/9 .. 9/3); every other staged stat uses a ladder based on 2
// (2/8 .. 8/2). Out of range stages are clamped.
func StageMultiplier(stat StagedStat, stage int) float64 {
	stage = ClampStage(stage)

	base := 2.0
	if stat == StagedAccuracy {
		base = 3.0
	}

	if stage <= 0 {
		return base / (base - float64(stage))
	}
	return (base + float64(stage)) / base
}
