package battle

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// State is the lifecycle state of a battle session
type State string

// States
const (
	StateAwaitingActions     State = "awaiting_actions"
	StateAwaitingReplacement State = "awaiting_replacement"
	StateVictory             State = "victory"
	StateDefeat              State = "defeat"
	StateFled                State = "fled"
	StateOpponentFled        State = "opponent_fled"
)

// Terminal reports whether no further round can be resolved
func (s State) Terminal() bool {
	switch s {
	case StateVictory, StateDefeat, StateFled, StateOpponentFled:
		return true
	}
	return false
}

// Valid reports whether s is a known state
func (s State) Valid() bool {
	return s == StateAwaitingActions || s == StateAwaitingReplacement || s.Terminal()
}

// lifecycle events
const (
	eventWon             = "won"
	eventLost            = "lost"
	eventEscaped         = "escaped"
	eventOpponentEscaped = "opponent_escaped"
	eventFainted         = "player_fainted"
	eventReplaced        = "replaced"
	eventWithdrew        = "withdrew"
)

func newLifecycle(initial State) *fsm.FSM {
	return fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: eventWon, Src: []string{string(StateAwaitingActions)}, Dst: string(StateVictory)},
			{Name: eventLost, Src: []string{string(StateAwaitingActions)}, Dst: string(StateDefeat)},
			{Name: eventEscaped, Src: []string{string(StateAwaitingActions)}, Dst: string(StateFled)},
			{Name: eventOpponentEscaped, Src: []string{string(StateAwaitingActions)}, Dst: string(StateOpponentFled)},
			{Name: eventFainted, Src: []string{string(StateAwaitingActions)}, Dst: string(StateAwaitingReplacement)},
			{Name: eventReplaced, Src: []string{string(StateAwaitingReplacement)}, Dst: string(StateAwaitingActions)},
			{Name: eventWithdrew, Src: []string{string(StateAwaitingReplacement)}, Dst: string(StateFled)},
		},
		fsm.Callbacks{},
	)
}

// transition fires a lifecycle event, reporting a refused transition as an
// invalid action.
func transition(ctx context.Context, machine *fsm.FSM, event string) error {
	if err := machine.Event(ctx, event); err != nil {
		return errors.InvalidActionf("cannot %s while %s", event, machine.Current())
	}
	return nil
}
