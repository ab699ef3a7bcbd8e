package battle

import (
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// FightResult describes one move application
type FightResult struct {
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`
	MoveID     string `json:"move_id"`
	Failed     bool   `json:"failed"`

	// Damage is the computed damage; HPDelta is what was applied after clamping
	Damage          int                   `json:"damage"`
	HPDelta         int                   `json:"hp_delta"`
	Critical        bool                  `json:"critical"`
	Multiplier      float64               `json:"multiplier,omitempty"`
	Effectiveness   pokemon.Effectiveness `json:"effectiveness,omitempty"`
	StageChanges    []StageChange         `json:"stage_changes,omitempty"`
	DefenderFainted bool                  `json:"defender_fainted"`
}

// StageChange records a stage effect on one creature
type StageChange struct {
	CreatureID string             `json:"creature_id"`
	Stat       pokemon.StagedStat `json:"stat"`
	Requested  int                `json:"requested"`
	Applied    int                `json:"applied"`
}

// FleeResult describes one escape attempt
type FleeResult struct {
	CreatureID string  `json:"creature_id"`
	Odds       float64 `json:"odds"`
	Roll       int     `json:"roll"`
	Escaped    bool    `json:"escaped"`
}

// ShiftResult describes an active creature replacement
type ShiftResult struct {
	PreviousID    string `json:"previous_id"`
	PreviousIndex int    `json:"previous_index"`
	ActiveID      string `json:"active_id"`
	ActiveIndex   int    `json:"active_index"`

	// Forced is set when the shift replaced a fainted creature
	Forced bool `json:"forced"`
}

// Step is one resolved (or skipped) action
type Step struct {
	Side    SideID       `json:"side"`
	Kind    ActionKind   `json:"kind"`
	Skipped bool         `json:"skipped,omitempty"`
	Fight   *FightResult `json:"fight,omitempty"`
	Flee    *FleeResult  `json:"flee,omitempty"`
	Shift   *ShiftResult `json:"shift,omitempty"`
}

// ExperienceAward records experience granted after an opponent fainted
type ExperienceAward struct {
	CreatureID string                 `json:"creature_id"`
	DefeatedID string                 `json:"defeated_id"`
	Amount     int                    `json:"amount"`
	Report     *pokemon.LevelUpReport `json:"report"`
}

// RoundResult is everything that happened in one round, in order. It holds
// identifiers and numbers only; presentation decides the wording.
type RoundResult struct {
	Round      int               `json:"round"`
	Steps      []Step            `json:"steps"`
	Experience []ExperienceAward `json:"experience,omitempty"`
	Messages   []Message         `json:"messages"`
	State      State             `json:"state"`
}

// Ended reports whether the round ended the battle
func (r *RoundResult) Ended() bool {
	return r.State.Terminal()
}

// MessageCode identifies a narration line
type MessageCode string

// Message codes
const (
	MessageMoveUsed          MessageCode = "MOVE_USED"
	MessageMoveFailed        MessageCode = "MOVE_FAILED"
	MessageCriticalHit       MessageCode = "CRITICAL_HIT"
	MessageNoEffect          MessageCode = "NO_EFFECT"
	MessageNotEffective      MessageCode = "NOT_EFFECTIVE"
	MessageSuperEffective    MessageCode = "SUPER_EFFECTIVE"
	MessageDamage            MessageCode = "DAMAGE"
	MessageStageRose         MessageCode = "STAGE_ROSE"
	MessageStageFell         MessageCode = "STAGE_FELL"
	MessageStageUnchanged    MessageCode = "STAGE_UNCHANGED"
	MessageFainted           MessageCode = "FAINTED"
	MessageRunSucceeded      MessageCode = "RUN_SUCCEEDED"
	MessageRunFailed         MessageCode = "RUN_FAILED"
	MessageShifted           MessageCode = "SHIFTED"
	MessageActionSkipped     MessageCode = "ACTION_SKIPPED"
	MessageExperienceGained  MessageCode = "EXPERIENCE_GAINED"
	MessageLevelUp           MessageCode = "LEVEL_UP"
	MessageMoveLearned       MessageCode = "MOVE_LEARNED"
	MessageMoveOffered       MessageCode = "MOVE_OFFERED"
	MessageReplacementNeeded MessageCode = "REPLACEMENT_NEEDED"
	MessageVictory           MessageCode = "VICTORY"
	MessageDefeat            MessageCode = "DEFEAT"
)

// Message is one narration line with its parameters
type Message struct {
	Code       MessageCode        `json:"code"`
	Side       SideID             `json:"side,omitempty"`
	CreatureID string             `json:"creature_id,omitempty"`
	TargetID   string             `json:"target_id,omitempty"`
	MoveID     string             `json:"move_id,omitempty"`
	Stat       pokemon.StagedStat `json:"stat,omitempty"`
	Amount     int                `json:"amount,omitempty"`
}
