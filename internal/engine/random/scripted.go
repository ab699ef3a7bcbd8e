package random

import (
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Scripted replays queued values in order, for tests. Each draw must fall
// inside the requested range and running out of values is an error, so a
// test fails loudly when the engine draws in an unexpected order.
type Scripted struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
}

// NewScripted creates a scripted source
func NewScripted() *Scripted {
	return &Scripted{}
}

// QueueInts appends integer draws
func (s *Scripted) QueueInts(values ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, values...)
	return s
}

// QueueFloats appends float draws
func (s *Scripted) QueueFloats(values ...float64) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = append(s.floats, values...)
	return s
}

// Remaining returns how many integer and float draws are still queued
func (s *Scripted) Remaining() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ints), len(s.floats)
}

// IntBetween pops the next integer draw
func (s *Scripted) IntBetween(a, b int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ints) == 0 {
		return 0, errors.Internalf("no scripted int left for [%d, %d]", a, b)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < a || v > b {
		return 0, errors.Internalf("scripted int %d outside [%d, %d]", v, a, b)
	}
	return v, nil
}

// FloatBetween pops the next float draw
func (s *Scripted) FloatBetween(a, b float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.floats) == 0 {
		return 0, errors.Internalf("no scripted float left for [%g, %g]", a, b)
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	if v < a || v > b {
		return 0, errors.Internalf("scripted float %g outside [%g, %g]", v, a, b)
	}
	return v, nil
}
