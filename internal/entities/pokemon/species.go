package pokemon

// Species is an immutable creature species definition
type Species struct {
	ID             string
	Types          []Type
	BaseStats      Stats
	BaseExperience int
	Curve          ExperienceCurve

	// Learnset is ordered by ascending level
	Learnset []LevelMoves
}

// LevelMoves are the moves a species learns on reaching a level
type LevelMoves struct {
	Level int
	Moves []*Move
}

// MovesAt returns the moves learned exactly at level
func (s *Species) MovesAt(level int) []*Move {
	for _, entry := range s.Learnset {
		if entry.Level == level {
			return entry.Moves
		}
	}
	return nil
}

// DefaultMoves returns the moveset of a freshly generated creature: the most
// recently learnable moves at or below level, at most MaxMoves of them.
func (s *Species) DefaultMoves(level int) []*Move {
	var known []*Move
	for _, entry := range s.Learnset {
		if entry.Level > level {
			break
		}
		for _, move := range entry.Moves {
			if !containsMove(known, move.ID) {
				known = append(known, move)
			}
		}
	}

	if len(known) > MaxMoves {
		known = known[len(known)-MaxMoves:]
	}
	return known
}

// DefaultLearnedMoves returns DefaultMoves as learned moves with full PP
func (s *Species) DefaultLearnedMoves(level int) []*LearnedMove {
	defaults := s.DefaultMoves(level)
	moves := make([]*LearnedMove, len(defaults))
	for i, m := range defaults {
		moves[i] = NewLearnedMove(m)
	}
	return moves
}

// Learns reports whether the species learns moveID at or below level
func (s *Species) Learns(moveID string, level int) bool {
	for _, entry := range s.Learnset {
		if entry.Level > level {
			return false
		}
		if containsMove(entry.Moves, moveID) {
			return true
		}
	}
	return false
}

func containsMove(moves []*Move, id string) bool {
	for _, m := range moves {
		if m.ID == id {
			return true
		}
	}
	return false
}
