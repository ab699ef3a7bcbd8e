// Package narrate turns battle messages into readable lines for the CLI
package narrate

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// DisplayName turns a catalog id such as THUNDER_SHOCK into "Thunder Shock"
func DisplayName(id string) string {
	if id == "" {
		return ""
	}
	// a Caser keeps state, so each call gets its own
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// Narrator renders the messages of one battle. It knows the creatures of both
// parties by id.
type Narrator struct {
	names map[string]string
}

// New creates a narrator for the battle in session
func New(session *battle.SessionData) *Narrator {
	n := &Narrator{names: map[string]string{}}
	if session == nil {
		return n
	}

	foe := "Foe"
	if session.Wild {
		foe = "Wild"
	}
	n.addParty(session.Player, "")
	n.addParty(session.Opponent, foe)
	return n
}

func (n *Narrator) addParty(party *battle.PartyData, prefix string) {
	if party == nil {
		return
	}
	for _, c := range party.Creatures {
		name := c.Nickname
		if name == "" {
			name = DisplayName(c.SpeciesID)
		}
		if prefix != "" {
			name = prefix + " " + name
		}
		n.names[c.ID] = name
	}
}

// Name returns the display name of a creature in the battle
func (n *Narrator) Name(creatureID string) string {
	if name, ok := n.names[creatureID]; ok {
		return name
	}
	return creatureID
}

// Round renders every message of a round result in order
func (n *Narrator) Round(result *battle.RoundResult) []string {
	if result == nil {
		return nil
	}
	lines := make([]string, 0, len(result.Messages))
	for _, m := range result.Messages {
		lines = append(lines, n.Line(m))
	}
	return lines
}

// Line renders one message. Unknown codes render as the raw code.
func (n *Narrator) Line(m battle.Message) string {
	creature := n.Name(m.CreatureID)
	target := n.Name(m.TargetID)
	player := m.Side == battle.SidePlayer

	switch m.Code {
	case battle.MessageMoveUsed:
		return fmt.Sprintf("%s used %s!", creature, DisplayName(m.MoveID))
	case battle.MessageMoveFailed:
		return fmt.Sprintf("%s's attack missed!", creature)
	case battle.MessageCriticalHit:
		return "A critical hit!"
	case battle.MessageNoEffect:
		return fmt.Sprintf("It doesn't affect %s...", target)
	case battle.MessageNotEffective:
		return "It's not very effective..."
	case battle.MessageSuperEffective:
		return "It's super effective!"
	case battle.MessageDamage:
		return fmt.Sprintf("%s took %d damage.", target, m.Amount)
	case battle.MessageStageRose:
		return fmt.Sprintf("%s's %s %s!", target, statName(m.Stat), magnitude(m.Amount, "rose", "sharply rose"))
	case battle.MessageStageFell:
		return fmt.Sprintf("%s's %s %s!", target, statName(m.Stat), magnitude(m.Amount, "fell", "harshly fell"))
	case battle.MessageStageUnchanged:
		return fmt.Sprintf("%s's %s won't go any further!", target, statName(m.Stat))
	case battle.MessageFainted:
		return fmt.Sprintf("%s fainted!", creature)
	case battle.MessageRunSucceeded:
		if player {
			return "Got away safely!"
		}
		return fmt.Sprintf("%s fled!", creature)
	case battle.MessageRunFailed:
		if player {
			return "Can't escape!"
		}
		return fmt.Sprintf("%s couldn't get away!", creature)
	case battle.MessageShifted:
		if player {
			return fmt.Sprintf("Come back, %s! Go! %s!", target, creature)
		}
		return fmt.Sprintf("%s was sent out!", creature)
	case battle.MessageActionSkipped:
		return fmt.Sprintf("%s can't move!", creature)
	case battle.MessageExperienceGained:
		return fmt.Sprintf("%s gained %d EXP. Points!", creature, m.Amount)
	case battle.MessageLevelUp:
		return fmt.Sprintf("%s grew to level %d!", creature, m.Amount)
	case battle.MessageMoveLearned:
		return fmt.Sprintf("%s learned %s!", creature, DisplayName(m.MoveID))
	case battle.MessageMoveOffered:
		return fmt.Sprintf("%s wants to learn %s, but already knows four moves.", creature, DisplayName(m.MoveID))
	case battle.MessageReplacementNeeded:
		if player {
			return fmt.Sprintf("%s is out! Choose the next creature.", creature)
		}
		return fmt.Sprintf("The opponent must replace %s.", creature)
	case battle.MessageVictory:
		return "You won the battle!"
	case battle.MessageDefeat:
		return "You have no creatures left to fight!"
	}
	return string(m.Code)
}

// Outcome describes how a finished battle ended
func Outcome(state battle.State) string {
	switch state {
	case battle.StateVictory:
		return "Victory"
	case battle.StateDefeat:
		return "Defeat"
	case battle.StateFled:
		return "You left the battle"
	case battle.StateOpponentFled:
		return "The opponent fled"
	}
	return DisplayName(string(state))
}

func statName(stat pokemon.StagedStat) string {
	return DisplayName(string(stat))
}

func magnitude(amount int, small, large string) string {
	if amount >= 2 || amount <= -2 {
		return large
	}
	return small
}
