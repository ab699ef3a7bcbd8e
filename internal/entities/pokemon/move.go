package pokemon

// Move is an immutable move definition shared by every creature that knows it
type Move struct {
	ID       string
	Type     Type
	Category Category

	// Power is zero for non-damaging moves
	Power int

	// Accuracy is nil for moves that never miss
	Accuracy  *int
	DefaultPP int
	Effects   *MoveEffects
}

// MoveEffects are the secondary effects applied when a move does not fail
type MoveEffects struct {
	// Stages maps a staged stat to a signed delta. Positive deltas raise the
	// user's stage, negative deltas lower the target's.
	Stages Stages
	Status *StatusEffect
}

// StatusEffect is a status condition a move may inflict
type StatusEffect struct {
	Condition Status
	Chance    int
}

// StageEffects returns the move's stage deltas in canonical stat order
func (m *Move) StageEffects() []StageDelta {
	if m.Effects == nil || len(m.Effects.Stages) == 0 {
		return nil
	}

	deltas := make([]StageDelta, 0, len(m.Effects.Stages))
	for _, stat := range AllStagedStats {
		if delta, ok := m.Effects.Stages[stat]; ok && delta != 0 {
			deltas = append(deltas, StageDelta{Stat: stat, Delta: delta})
		}
	}
	return deltas
}

// StageDelta is a signed change to one staged stat
type StageDelta struct {
	Stat  StagedStat `json:"stat"`
	Delta int        `json:"delta"`
}

// LearnedMove is a move known by one creature together with its uses
type LearnedMove struct {
	Move      *Move
	PP        int
	CurrentPP int
}

// NewLearnedMove creates a learned move with full uses
func NewLearnedMove(move *Move) *LearnedMove {
	return &LearnedMove{
		Move:      move,
		PP:        move.DefaultPP,
		CurrentPP: move.DefaultPP,
	}
}

// Usable reports whether the move has uses left
func (lm *LearnedMove) Usable() bool {
	return lm.CurrentPP > 0
}

// Spend uses the move once. Current PP never drops below zero.
func (lm *LearnedMove) Spend() {
	if lm.CurrentPP > 0 {
		lm.CurrentPP--
	}
}

// Restore refills the move's uses
func (lm *LearnedMove) Restore() {
	lm.CurrentPP = lm.PP
}
