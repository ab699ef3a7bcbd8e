package random

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// SeededRoller is a reproducible dice.Roller. The same seed yields the same
// sequence of rolls.
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ dice.Roller = (*SeededRoller)(nil)

// NewSeededRoller creates a roller seeded with seed
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("invalid die size %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("invalid dice count %d", count)
	}

	rolls := make([]int, count)
	for i := range rolls {
		roll, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		rolls[i] = roll
	}
	return rolls, nil
}

// NewSeededSource creates a reproducible Source
func NewSeededSource(seed uint64) *DiceSource {
	return NewDiceSource(NewSeededRoller(seed))
}
