package battle

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Party is one side's creatures and the index of the one in battle
type Party struct {
	Creatures []*pokemon.Creature
	Active    int
}

// ActiveCreature returns the creature currently in battle
func (p *Party) ActiveCreature() *pokemon.Creature {
	return p.Creatures[p.Active]
}

// HasConscious reports whether any creature can still battle
func (p *Party) HasConscious() bool {
	return p.NextConscious() >= 0
}

// NextConscious returns the index of the first conscious creature, or -1
func (p *Party) NextConscious() int {
	for i, c := range p.Creatures {
		if c.Conscious() {
			return i
		}
	}
	return -1
}

// SessionConfig configures a new Session
type SessionConfig struct {
	ID       string
	Engine   *Engine
	Player   []*pokemon.Creature
	Opponent []*pokemon.Creature

	// Wild battles have a single opponent creature and award less experience
	Wild bool
}

// Validate checks the configuration
func (cfg *SessionConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.ID == "" {
		vb.RequiredField("ID")
	}
	if cfg.Engine == nil {
		vb.RequiredField("Engine")
	}
	validateParty(vb, "Player", cfg.Player)
	validateParty(vb, "Opponent", cfg.Opponent)
	if cfg.Wild && len(cfg.Opponent) > 1 {
		vb.InvalidField("Opponent", "a wild battle has exactly one opponent creature")
	}

	seen := make(map[string]bool)
	for _, c := range append(append([]*pokemon.Creature{}, cfg.Player...), cfg.Opponent...) {
		if c == nil {
			continue
		}
		if seen[c.ID()] {
			vb.Fieldf("Creatures", "creature %s appears more than once", c.ID())
		}
		seen[c.ID()] = true
	}

	return vb.Build()
}

func validateParty(vb *errors.ValidationBuilder, field string, party []*pokemon.Creature) {
	if len(party) == 0 {
		vb.RequiredField(field)
		return
	}

	conscious := false
	for i, c := range party {
		if c == nil {
			vb.Fieldf(field, "creature %d is nil", i)
			continue
		}
		conscious = conscious || c.Conscious()
	}
	if !conscious {
		vb.InvalidField(field, "no conscious creature")
	}
}

// Session is one battle between the player's party and an opponent party.
// A Session is not safe for concurrent use.
type Session struct {
	id      string
	engine  *Engine
	wild    bool
	round   int
	parties map[SideID]*Party
	machine *fsm.FSM
}

// NewSession starts a battle with the first conscious creature of each party
// in front. Battle stages start at zero.
func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	player := &Party{Creatures: cfg.Player}
	player.Active = player.NextConscious()
	opponent := &Party{Creatures: cfg.Opponent}
	opponent.Active = opponent.NextConscious()

	s := &Session{
		id:     cfg.ID,
		engine: cfg.Engine,
		wild:   cfg.Wild,
		parties: map[SideID]*Party{
			SidePlayer:   player,
			SideOpponent: opponent,
		},
		machine: newLifecycle(StateAwaitingActions),
	}
	s.resetStages()
	return s, nil
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Wild reports whether this is a wild battle
func (s *Session) Wild() bool { return s.wild }

// Round returns the number of rounds resolved so far
func (s *Session) Round() int { return s.round }

// State returns the lifecycle state
func (s *Session) State() State { return State(s.machine.Current()) }

// Party returns one side's party
func (s *Session) Party(side SideID) *Party { return s.parties[side] }

// Active returns the creature in battle for a side
func (s *Session) Active(side SideID) *pokemon.Creature {
	return s.parties[side].ActiveCreature()
}

// Participants returns every creature of both parties, player first
func (s *Session) Participants() []*pokemon.Creature {
	out := make([]*pokemon.Creature, 0, len(s.parties[SidePlayer].Creatures)+len(s.parties[SideOpponent].Creatures))
	out = append(out, s.parties[SidePlayer].Creatures...)
	return append(out, s.parties[SideOpponent].Creatures...)
}

// ValidateAction checks an action for a side against the current session
func (s *Session) ValidateAction(side SideID, action Action) error {
	party := s.parties[side]
	switch action.Kind {
	case ActionFight:
		return ValidateFight(party.ActiveCreature(), action.MoveSlot)
	case ActionRun:
		return nil
	case ActionShift:
		return validateShift(party, action.Target)
	default:
		return errors.InvalidActionf("unknown action kind %q", action.Kind)
	}
}

func validateShift(party *Party, index int) error {
	if index < 0 || index >= len(party.Creatures) {
		return errors.InvalidActionf("party has no creature at index %d", index)
	}
	if index == party.Active {
		return errors.InvalidActionf("creature %d is already in battle", index)
	}
	if !party.Creatures[index].Conscious() {
		return errors.InvalidActionf("creature %s has fainted", party.Creatures[index].ID())
	}
	return nil
}

// ResolveRound resolves one round from both sides' actions. Both actions are
// validated before anything changes; an invalid action leaves the session
// untouched.
func (s *Session) ResolveRound(ctx context.Context, playerAction, opponentAction Action) (*RoundResult, error) {
	switch state := s.State(); {
	case state == StateAwaitingReplacement:
		return nil, errors.InvalidAction("a fainted creature must be replaced first")
	case state.Terminal():
		return nil, errors.InvalidActionf("battle is over: %s", state)
	}

	if err := s.ValidateAction(SidePlayer, playerAction); err != nil {
		return nil, errors.Wrap(err, "invalid player action").WithSide(string(SidePlayer))
	}
	if err := s.ValidateAction(SideOpponent, opponentAction); err != nil {
		return nil, errors.Wrap(err, "invalid opponent action").WithSide(string(SideOpponent))
	}

	actions := map[SideID]Action{
		SidePlayer:   playerAction,
		SideOpponent: opponentAction,
	}
	first := FirstToAct(s.Active(SidePlayer), s.Active(SideOpponent), playerAction, opponentAction)

	r := &round{session: s, result: &RoundResult{Round: s.round + 1}}
	for _, side := range []SideID{first, first.Other()} {
		if r.event != "" {
			break
		}
		if err := r.act(side, actions[side]); err != nil {
			return nil, err
		}
	}
	if r.event == "" {
		r.settleFaints()
	}

	s.round++
	if r.event != "" {
		if err := transition(ctx, s.machine, r.event); err != nil {
			return nil, err
		}
	}
	if s.State().Terminal() {
		s.resetStages()
		r.closingMessage()
	}
	r.result.State = s.State()

	if err := s.validate(); err != nil {
		return nil, err
	}
	return r.result, nil
}

// ReplaceFainted sends in the player's creature at index after the active
// one fainted.
func (s *Session) ReplaceFainted(ctx context.Context, index int) (*ShiftResult, error) {
	if s.State() != StateAwaitingReplacement {
		return nil, errors.InvalidActionf("no replacement needed while %s", s.State())
	}

	party := s.parties[SidePlayer]
	if err := validateShift(party, index); err != nil {
		return nil, err
	}
	if err := transition(ctx, s.machine, eventReplaced); err != nil {
		return nil, err
	}
	return shift(party, index, true), nil
}

// Withdraw ends the battle instead of replacing a fainted creature
func (s *Session) Withdraw(ctx context.Context) error {
	if s.State() != StateAwaitingReplacement {
		return errors.InvalidActionf("cannot withdraw while %s", s.State())
	}
	if err := transition(ctx, s.machine, eventWithdrew); err != nil {
		return err
	}
	s.resetStages()
	return nil
}

func (s *Session) resetStages() {
	for _, c := range s.Participants() {
		c.ResetStages()
	}
}

func (s *Session) validate() error {
	for _, c := range s.Participants() {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func shift(party *Party, index int, forced bool) *ShiftResult {
	previous := party.Active
	party.Active = index
	return &ShiftResult{
		PreviousID:    party.Creatures[previous].ID(),
		PreviousIndex: previous,
		ActiveID:      party.Creatures[index].ID(),
		ActiveIndex:   index,
		Forced:        forced,
	}
}

// round accumulates the outcome of one ResolveRound call
type round struct {
	session *Session
	result  *RoundResult

	// event is the lifecycle event the round ends with, if any
	event   string
	fainted []faint
}

type faint struct {
	side     SideID
	creature *pokemon.Creature
}

func (r *round) act(side SideID, action Action) error {
	s := r.session
	actor := s.Active(side)
	step := Step{Side: side, Kind: action.Kind}

	if !actor.Conscious() && action.Kind != ActionShift {
		step.Skipped = true
		r.result.Steps = append(r.result.Steps, step)
		r.say(Message{Code: MessageActionSkipped, Side: side, CreatureID: actor.ID()})
		return nil
	}

	switch action.Kind {
	case ActionFight:
		defender := s.Active(side.Other())
		fight, err := s.engine.ResolveFight(actor, defender, action.MoveSlot)
		if err != nil {
			return err
		}
		step.Fight = fight
		r.result.Steps = append(r.result.Steps, step)
		r.narrateFight(side, fight)
		if fight.DefenderFainted {
			r.fainted = append(r.fainted, faint{side: side.Other(), creature: defender})
		}

	case ActionRun:
		flee, err := s.engine.ResolveFlee(actor, s.Active(side.Other()))
		if err != nil {
			return err
		}
		step.Flee = flee
		r.result.Steps = append(r.result.Steps, step)
		if !flee.Escaped {
			r.say(Message{Code: MessageRunFailed, Side: side, CreatureID: actor.ID()})
			return nil
		}
		r.say(Message{Code: MessageRunSucceeded, Side: side, CreatureID: actor.ID()})
		r.event = eventEscaped
		if side == SideOpponent {
			r.event = eventOpponentEscaped
		}

	case ActionShift:
		step.Shift = shift(s.parties[side], action.Target, false)
		r.result.Steps = append(r.result.Steps, step)
		r.say(Message{
			Code:       MessageShifted,
			Side:       side,
			CreatureID: step.Shift.ActiveID,
			TargetID:   step.Shift.PreviousID,
		})
	}
	return nil
}

// settleFaints awards experience for a fainted opponent and decides what
// happens next for each side that lost its active creature.
func (r *round) settleFaints() {
	s := r.session
	for _, f := range r.fainted {
		side := f.side
		party := s.parties[side]
		if side == SideOpponent {
			r.award(f.creature)
		}
		if party.ActiveCreature().Conscious() {
			// shifted out before the round ended
			continue
		}

		if side == SideOpponent {
			next := party.NextConscious()
			if s.wild || next < 0 {
				r.event = eventWon
				return
			}
			forced := shift(party, next, true)
			r.result.Steps = append(r.result.Steps, Step{Side: side, Kind: ActionShift, Shift: forced})
			r.say(Message{Code: MessageShifted, Side: side, CreatureID: forced.ActiveID, TargetID: forced.PreviousID})
			continue
		}

		if !party.HasConscious() {
			r.event = eventLost
			return
		}
		r.event = eventFainted
		r.say(Message{Code: MessageReplacementNeeded, Side: side, CreatureID: party.ActiveCreature().ID()})
		return
	}
}

func (r *round) award(defeated *pokemon.Creature) {
	s := r.session
	winner := s.Active(SidePlayer)
	if !winner.Conscious() {
		return
	}

	amount := ExperienceYield(defeated, s.wild)
	report, err := winner.GainExperience(amount)
	if err != nil {
		// amount is never negative
		return
	}

	r.result.Experience = append(r.result.Experience, ExperienceAward{
		CreatureID: winner.ID(),
		DefeatedID: defeated.ID(),
		Amount:     amount,
		Report:     report,
	})
	r.say(Message{Code: MessageExperienceGained, Side: SidePlayer, CreatureID: winner.ID(), Amount: amount})
	for _, level := range report.Levels {
		r.say(Message{Code: MessageLevelUp, Side: SidePlayer, CreatureID: winner.ID(), Amount: level.Level})
		for _, id := range level.LearnedMoves {
			r.say(Message{Code: MessageMoveLearned, Side: SidePlayer, CreatureID: winner.ID(), MoveID: id})
		}
		for _, id := range level.OfferedMoves {
			r.say(Message{Code: MessageMoveOffered, Side: SidePlayer, CreatureID: winner.ID(), MoveID: id})
		}
	}
}

func (r *round) narrateFight(side SideID, fight *FightResult) {
	r.say(Message{Code: MessageMoveUsed, Side: side, CreatureID: fight.AttackerID, MoveID: fight.MoveID})
	if fight.Failed {
		r.say(Message{Code: MessageMoveFailed, Side: side, CreatureID: fight.AttackerID, MoveID: fight.MoveID})
		return
	}

	if fight.Effectiveness != "" {
		if fight.Critical && fight.Damage > 0 {
			r.say(Message{Code: MessageCriticalHit, Side: side, TargetID: fight.DefenderID})
		}
		switch fight.Effectiveness {
		case pokemon.EffectivenessNone:
			r.say(Message{Code: MessageNoEffect, Side: side, TargetID: fight.DefenderID})
		case pokemon.EffectivenessVeryLow, pokemon.EffectivenessLow:
			r.say(Message{Code: MessageNotEffective, Side: side, TargetID: fight.DefenderID})
		case pokemon.EffectivenessSuper, pokemon.EffectivenessExtreme:
			r.say(Message{Code: MessageSuperEffective, Side: side, TargetID: fight.DefenderID})
		}
		if fight.HPDelta != 0 {
			r.say(Message{Code: MessageDamage, Side: side, TargetID: fight.DefenderID, Amount: -fight.HPDelta})
		}
	}

	for _, change := range fight.StageChanges {
		code := MessageStageRose
		switch {
		case change.Applied == 0:
			code = MessageStageUnchanged
		case change.Applied < 0:
			code = MessageStageFell
		}
		r.say(Message{Code: code, Side: side, TargetID: change.CreatureID, Stat: change.Stat, Amount: change.Applied})
	}

	if fight.DefenderFainted {
		r.say(Message{Code: MessageFainted, Side: side.Other(), CreatureID: fight.DefenderID})
	}
}

func (r *round) closingMessage() {
	switch r.session.State() {
	case StateVictory:
		r.say(Message{Code: MessageVictory, Side: SidePlayer})
	case StateDefeat:
		r.say(Message{Code: MessageDefeat, Side: SidePlayer})
	}
}

func (r *round) say(m Message) {
	r.result.Messages = append(r.result.Messages, m)
}
