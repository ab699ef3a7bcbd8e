package battle

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// SessionData is the serializable snapshot of a session
type SessionData struct {
	ID       string     `json:"id"`
	Wild     bool       `json:"wild"`
	Round    int        `json:"round"`
	State    State      `json:"state"`
	Player   *PartyData `json:"player"`
	Opponent *PartyData `json:"opponent"`
}

// PartyData is the serializable snapshot of a party
type PartyData struct {
	Creatures []*pokemon.CreatureData `json:"creatures"`
	Active    int                     `json:"active"`
}

// ToData snapshots the session, battle stages included
func (s *Session) ToData() *SessionData {
	return &SessionData{
		ID:       s.id,
		Wild:     s.wild,
		Round:    s.round,
		State:    s.State(),
		Player:   partyToData(s.parties[SidePlayer]),
		Opponent: partyToData(s.parties[SideOpponent]),
	}
}

func partyToData(p *Party) *PartyData {
	creatures := make([]*pokemon.CreatureData, len(p.Creatures))
	for i, c := range p.Creatures {
		creatures[i] = c.ToData()
	}
	return &PartyData{Creatures: creatures, Active: p.Active}
}

// LoadSession restores a session from a snapshot
func LoadSession(data *SessionData, engine *Engine, lookup pokemon.Lookup) (*Session, error) {
	if data == nil {
		return nil, errors.InvalidArgument("session data is required")
	}
	if engine == nil {
		return nil, errors.InvalidArgument("engine is required")
	}
	if !data.State.Valid() {
		return nil, errors.InvalidArgumentf("unknown session state %q", data.State)
	}

	player, err := partyFromData(data.Player, lookup)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load player party of session %s", data.ID)
	}
	opponent, err := partyFromData(data.Opponent, lookup)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load opponent party of session %s", data.ID)
	}

	return &Session{
		id:     data.ID,
		engine: engine,
		wild:   data.Wild,
		round:  data.Round,
		parties: map[SideID]*Party{
			SidePlayer:   player,
			SideOpponent: opponent,
		},
		machine: newLifecycle(data.State),
	}, nil
}

func partyFromData(data *PartyData, lookup pokemon.Lookup) (*Party, error) {
	if data == nil || len(data.Creatures) == 0 {
		return nil, errors.InvalidArgument("party has no creatures")
	}
	if data.Active < 0 || data.Active >= len(data.Creatures) {
		return nil, errors.InvalidArgumentf("active index %d outside party of %d", data.Active, len(data.Creatures))
	}

	party := &Party{Active: data.Active}
	for _, cd := range data.Creatures {
		c, err := pokemon.LoadCreatureFromData(cd, lookup)
		if err != nil {
			return nil, err
		}
		party.Creatures = append(party.Creatures, c)
	}
	return party, nil
}
