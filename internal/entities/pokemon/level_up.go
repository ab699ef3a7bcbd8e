package pokemon

import (
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// LevelUpReport describes everything that happened while gaining experience
type LevelUpReport struct {
	Gained    int       `json:"gained"`
	FromLevel int       `json:"from_level"`
	ToLevel   int       `json:"to_level"`
	Levels    []LevelUp `json:"levels,omitempty"`
}

// LevelUp records one level crossed
type LevelUp struct {
	Level      int   `json:"level"`
	StatDeltas Stats `json:"stat_deltas"`

	// LearnedMoves were added automatically because a slot was free
	LearnedMoves []string `json:"learned_moves,omitempty"`

	// OfferedMoves need a learn or forget decision from the caller
	OfferedMoves []string `json:"offered_moves,omitempty"`
}

// LeveledUp reports whether at least one level was crossed
func (r *LevelUpReport) LeveledUp() bool {
	return len(r.Levels) > 0
}

// GainExperience adds experience and crosses every level boundary it reaches.
// HP keeps the damage already taken: it moves by the change in max HP.
func (c *Creature) GainExperience(amount int) (*LevelUpReport, error) {
	if amount < 0 {
		return nil, errors.InvalidArgumentf("experience amount %d must not be negative", amount)
	}

	report := &LevelUpReport{
		Gained:    amount,
		FromLevel: c.level,
	}
	c.experience += amount

	for c.level < MaxLevel && c.experience >= c.ExperienceToNextLevel() {
		before := c.Stats()

		c.level++
		after := c.Stats()

		deltas := make(Stats, len(AllStats))
		for _, stat := range AllStats {
			deltas[stat] = after[stat] - before[stat]
		}
		c.hp = clamp(c.hp+deltas[StatHP], 0, after[StatHP])

		levelUp := LevelUp{
			Level:      c.level,
			StatDeltas: deltas,
		}
		for _, move := range c.species.MovesAt(c.level) {
			if c.Knows(move.ID) {
				continue
			}
			if len(c.moves) < MaxMoves {
				c.moves = append(c.moves, NewLearnedMove(move))
				levelUp.LearnedMoves = append(levelUp.LearnedMoves, move.ID)
				continue
			}
			levelUp.OfferedMoves = append(levelUp.OfferedMoves, move.ID)
		}

		report.Levels = append(report.Levels, levelUp)
	}

	report.ToLevel = c.level
	return report, nil
}

// LearnMove teaches a move. A negative slot appends the move and fails when
// every slot is taken; otherwise the move in slot is forgotten.
func (c *Creature) LearnMove(move *Move, slot int) error {
	if move == nil {
		return errors.InvalidArgument("move is required")
	}
	if c.Knows(move.ID) {
		return errors.AlreadyExists("creature already knows move").
			WithMove(move.ID)
	}

	if slot < 0 {
		if len(c.moves) >= MaxMoves {
			return errors.FailedPreconditionf("creature already knows %d moves", MaxMoves)
		}
		c.moves = append(c.moves, NewLearnedMove(move))
		return nil
	}

	if slot >= len(c.moves) {
		return errors.InvalidArgumentf("move slot %d out of range", slot)
	}
	c.moves[slot] = NewLearnedMove(move)
	return nil
}
