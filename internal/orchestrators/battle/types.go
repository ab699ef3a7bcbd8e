package battle

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
)

// StartWildBattleInput defines the request for starting a wild battle
type StartWildBattleInput struct {
	OwnerID string
	ZoneID  string
	// PartyIDs are the owner's creatures in send-out order
	PartyIDs []string
	// RollEncounter rolls the zone's encounter rate first; when it does not
	// trigger no battle starts
	RollEncounter bool
}

// StartWildBattleOutput defines the response for starting a wild battle
type StartWildBattleOutput struct {
	// Encountered is false when RollEncounter was set and nothing appeared
	Encountered bool
	Battle      *battlerepo.Record
}

// OpponentCreature describes a creature a trainer sends out
type OpponentCreature struct {
	SpeciesID string
	Level     int
}

// StartTrainerBattleInput defines the request for starting a trainer battle
type StartTrainerBattleInput struct {
	OwnerID  string
	PartyIDs []string
	Opponent []OpponentCreature
}

// StartTrainerBattleOutput defines the response for starting a trainer battle
type StartTrainerBattleOutput struct {
	Battle *battlerepo.Record
}

// ResolveRoundInput defines the request for resolving a round. The opponent's
// action is chosen by the service.
type ResolveRoundInput struct {
	BattleID string
	Action   battle.Action
}

// ResolveRoundOutput defines the response for resolving a round
type ResolveRoundOutput struct {
	Result *battle.RoundResult
	Battle *battlerepo.Record
}

// ReplaceFaintedInput defines the request for sending in a replacement
type ReplaceFaintedInput struct {
	BattleID string
	Index    int
}

// ReplaceFaintedOutput defines the response for sending in a replacement
type ReplaceFaintedOutput struct {
	Shift  *battle.ShiftResult
	Battle *battlerepo.Record
}

// WithdrawInput defines the request for leaving a battle after a faint
type WithdrawInput struct {
	BattleID string
}

// WithdrawOutput defines the response for leaving a battle
type WithdrawOutput struct {
	Battle *battlerepo.Record
}

// GetBattleInput defines the request for getting a battle
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput defines the response for getting a battle
type GetBattleOutput struct {
	Battle *battlerepo.Record
}
