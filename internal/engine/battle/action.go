package battle

// ActionKind is the kind of action a side takes in a round
type ActionKind string

// Action kinds
const (
	ActionFight ActionKind = "FIGHT"
	ActionRun   ActionKind = "RUN"
	ActionShift ActionKind = "SHIFT"
)

// Action is one side's choice for a round
type Action struct {
	Kind ActionKind `json:"kind"`

	// MoveSlot is the learned move used by a FIGHT action
	MoveSlot int `json:"move_slot,omitempty"`

	// Target is the party index brought in by a SHIFT action
	Target int `json:"target,omitempty"`
}

// Fight uses the learned move in slot against the opposing creature
func Fight(slot int) Action {
	return Action{Kind: ActionFight, MoveSlot: slot}
}

// Run attempts to flee the battle
func Run() Action {
	return Action{Kind: ActionRun}
}

// Shift replaces the active creature with the party member at index
func Shift(index int) Action {
	return Action{Kind: ActionShift, Target: index}
}

// preempts reports whether the action resolves before any FIGHT
func (a Action) preempts() bool {
	return a.Kind == ActionRun || a.Kind == ActionShift
}

// SideID names a side of the battle
type SideID string

// Sides
const (
	SidePlayer   SideID = "PLAYER"
	SideOpponent SideID = "OPPONENT"
)

// Other returns the opposing side
func (s SideID) Other() SideID {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}
