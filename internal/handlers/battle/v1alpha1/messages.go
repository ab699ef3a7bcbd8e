package v1alpha1

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	creaturerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
)

// StartWildBattleRequest is the StartWildBattle message
type StartWildBattleRequest struct {
	OwnerID       string   `json:"owner_id"`
	ZoneID        string   `json:"zone_id"`
	PartyIDs      []string `json:"party_ids"`
	RollEncounter bool     `json:"roll_encounter,omitempty"`
}

// StartWildBattleResponse is the StartWildBattle reply. Battle is nil when no
// creature appeared.
type StartWildBattleResponse struct {
	Encountered bool               `json:"encountered"`
	Battle      *battlerepo.Record `json:"battle,omitempty"`
}

// OpponentCreature is one creature of a trainer's party
type OpponentCreature struct {
	SpeciesID string `json:"species_id"`
	Level     int    `json:"level"`
}

// StartTrainerBattleRequest is the StartTrainerBattle message
type StartTrainerBattleRequest struct {
	OwnerID  string             `json:"owner_id"`
	PartyIDs []string           `json:"party_ids"`
	Opponent []OpponentCreature `json:"opponent"`
}

// BattleResponse carries a battle
type BattleResponse struct {
	Battle *battlerepo.Record `json:"battle"`
}

// ResolveRoundRequest is the ResolveRound message
type ResolveRoundRequest struct {
	BattleID string        `json:"battle_id"`
	Action   battle.Action `json:"action"`
}

// ResolveRoundResponse is the ResolveRound reply
type ResolveRoundResponse struct {
	Result *battle.RoundResult `json:"result"`
	Battle *battlerepo.Record  `json:"battle"`
}

// ReplaceFaintedRequest is the ReplaceFainted message
type ReplaceFaintedRequest struct {
	BattleID string `json:"battle_id"`
	Index    int    `json:"index"`
}

// ReplaceFaintedResponse is the ReplaceFainted reply
type ReplaceFaintedResponse struct {
	Shift  *battle.ShiftResult `json:"shift"`
	Battle *battlerepo.Record  `json:"battle"`
}

// BattleIDRequest names a battle; used by Withdraw and GetBattle
type BattleIDRequest struct {
	BattleID string `json:"battle_id"`
}

// CreateCreatureRequest is the CreateCreature message
type CreateCreatureRequest struct {
	OwnerID   string `json:"owner_id"`
	SpeciesID string `json:"species_id"`
	Level     int    `json:"level"`
	Nickname  string `json:"nickname,omitempty"`
}

// CreatureIDRequest names a creature
type CreatureIDRequest struct {
	CreatureID string `json:"creature_id"`
}

// OwnerRequest names an owner; used by ListCreatures and HealParty
type OwnerRequest struct {
	OwnerID string `json:"owner_id"`
}

// LearnMoveRequest is the LearnMove message. Without a slot the move fills a
// free one.
type LearnMoveRequest struct {
	CreatureID string `json:"creature_id"`
	MoveID     string `json:"move_id"`
	Slot       *int   `json:"slot,omitempty"`
}

// CreatureResponse carries one creature
type CreatureResponse struct {
	Creature *creaturerepo.Record `json:"creature"`
}

// CreaturesResponse carries several creatures
type CreaturesResponse struct {
	Creatures []*creaturerepo.Record `json:"creatures"`
}
