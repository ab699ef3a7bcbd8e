package client

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	battlev1alpha1 "github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/narrate"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Start and play battles",
}

var startWildCmd = &cobra.Command{
	Use:   "start-wild [owner-id] [zone-id] [creature-id...]",
	Short: "Start a battle against a wild creature from a zone",
	Long: `Start a wild battle with the listed creatures in send-out order. With
--roll the zone's encounter rate decides whether anything appears.

  start-wild ash ROUTE_1 creature_123 creature_456 --roll`,
	Args: cobra.MinimumNArgs(3),
	RunE: startWild,
}

var startTrainerCmd = &cobra.Command{
	Use:   "start-trainer [owner-id] [creature-id...]",
	Short: "Start a battle against a trainer party",
	Long: `Start a trainer battle. The opponent party is a list of SPECIES:LEVEL.

  start-trainer ash creature_123 --opponent GEODUDE:12,MANKEY:14`,
	Args: cobra.MinimumNArgs(2),
	RunE: startTrainer,
}

var fightCmd = &cobra.Command{
	Use:   "fight [battle-id] [move-slot]",
	Short: "Use a move of the active creature",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid move slot %q: %w", args[1], err)
		}
		return resolveRound(cmd, args[0], battle.Fight(slot))
	},
}

var runCmd = &cobra.Command{
	Use:   "run [battle-id]",
	Short: "Try to flee the battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveRound(cmd, args[0], battle.Run())
	},
}

var shiftCmd = &cobra.Command{
	Use:   "shift [battle-id] [party-index]",
	Short: "Swap the active creature for another party member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid party index %q: %w", args[1], err)
		}
		return resolveRound(cmd, args[0], battle.Shift(index))
	},
}

var replaceCmd = &cobra.Command{
	Use:   "replace [battle-id] [party-index]",
	Short: "Send in a creature after the active one fainted",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid party index %q: %w", args[1], err)
		}

		var resp battlev1alpha1.ReplaceFaintedResponse
		err = call(battlev1alpha1.BattleServiceName, "ReplaceFainted", &battlev1alpha1.ReplaceFaintedRequest{
			BattleID: args[0],
			Index:    index,
		}, &resp)
		if err != nil {
			return err
		}

		if resp.Battle != nil && resp.Shift != nil {
			n := narrate.New(resp.Battle.Session)
			fmt.Fprintf(cmd.OutOrStdout(), "Go! %s!\n", n.Name(resp.Shift.ActiveID))
		}
		printBattle(cmd, resp.Battle)
		return nil
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw [battle-id]",
	Short: "Leave a battle instead of replacing a fainted creature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp battlev1alpha1.BattleResponse
		err := call(battlev1alpha1.BattleServiceName, "Withdraw",
			&battlev1alpha1.BattleIDRequest{BattleID: args[0]}, &resp)
		if err != nil {
			return err
		}
		printBattle(cmd, resp.Battle)
		return nil
	},
}

var getBattleCmd = &cobra.Command{
	Use:   "get [battle-id]",
	Short: "Get a battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp battlev1alpha1.BattleResponse
		err := call(battlev1alpha1.BattleServiceName, "GetBattle",
			&battlev1alpha1.BattleIDRequest{BattleID: args[0]}, &resp)
		if err != nil {
			return err
		}

		if raw, _ := cmd.Flags().GetBool("json"); raw {
			return printJSON(cmd.OutOrStdout(), resp.Battle)
		}
		printBattle(cmd, resp.Battle)
		return nil
	},
}

func init() {
	startWildCmd.Flags().Bool("roll", false, "Roll the zone's encounter rate first")
	startTrainerCmd.Flags().StringSlice("opponent", nil, "Opponent party as SPECIES:LEVEL entries")
	getBattleCmd.Flags().Bool("json", false, "Print the stored battle as JSON")

	battleCmd.AddCommand(startWildCmd)
	battleCmd.AddCommand(startTrainerCmd)
	battleCmd.AddCommand(fightCmd)
	battleCmd.AddCommand(runCmd)
	battleCmd.AddCommand(shiftCmd)
	battleCmd.AddCommand(replaceCmd)
	battleCmd.AddCommand(withdrawCmd)
	battleCmd.AddCommand(getBattleCmd)
}

func startWild(cmd *cobra.Command, args []string) error {
	roll, err := cmd.Flags().GetBool("roll")
	if err != nil {
		return err
	}

	var resp battlev1alpha1.StartWildBattleResponse
	err = call(battlev1alpha1.BattleServiceName, "StartWildBattle", &battlev1alpha1.StartWildBattleRequest{
		OwnerID:       args[0],
		ZoneID:        args[1],
		PartyIDs:      args[2:],
		RollEncounter: roll,
	}, &resp)
	if err != nil {
		return err
	}

	if !resp.Encountered {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing appeared.")
		return nil
	}
	printBattle(cmd, resp.Battle)
	return nil
}

func startTrainer(cmd *cobra.Command, args []string) error {
	entries, err := cmd.Flags().GetStringSlice("opponent")
	if err != nil {
		return err
	}
	opponent, err := parseOpponent(entries)
	if err != nil {
		return err
	}

	var resp battlev1alpha1.BattleResponse
	err = call(battlev1alpha1.BattleServiceName, "StartTrainerBattle", &battlev1alpha1.StartTrainerBattleRequest{
		OwnerID:  args[0],
		PartyIDs: args[1:],
		Opponent: opponent,
	}, &resp)
	if err != nil {
		return err
	}

	printBattle(cmd, resp.Battle)
	return nil
}

// parseOpponent reads SPECIES:LEVEL entries
func parseOpponent(entries []string) ([]battlev1alpha1.OpponentCreature, error) {
	if len(entries) == 0 {
		return nil, errors.New("--opponent needs at least one SPECIES:LEVEL entry")
	}

	opponent := make([]battlev1alpha1.OpponentCreature, 0, len(entries))
	for _, entry := range entries {
		species, levelText, found := strings.Cut(entry, ":")
		if !found || species == "" {
			return nil, fmt.Errorf("opponent entry %q is not SPECIES:LEVEL", entry)
		}
		level, err := strconv.Atoi(levelText)
		if err != nil {
			return nil, fmt.Errorf("opponent entry %q has invalid level: %w", entry, err)
		}
		opponent = append(opponent, battlev1alpha1.OpponentCreature{
			SpeciesID: strings.ToUpper(species),
			Level:     level,
		})
	}
	return opponent, nil
}

func resolveRound(cmd *cobra.Command, battleID string, action battle.Action) error {
	var resp battlev1alpha1.ResolveRoundResponse
	err := call(battlev1alpha1.BattleServiceName, "ResolveRound", &battlev1alpha1.ResolveRoundRequest{
		BattleID: battleID,
		Action:   action,
	}, &resp)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if resp.Battle != nil && resp.Result != nil {
		fmt.Fprintf(out, "-- Round %d --\n", resp.Result.Round)
		for _, line := range narrate.New(resp.Battle.Session).Round(resp.Result) {
			fmt.Fprintln(out, line)
		}
	}
	printBattle(cmd, resp.Battle)
	return nil
}

func printBattle(cmd *cobra.Command, record *battlerepo.Record) {
	out := cmd.OutOrStdout()
	if record == nil || record.Session == nil {
		fmt.Fprintln(out, "(no battle)")
		return
	}

	session := record.Session
	n := narrate.New(session)
	fmt.Fprintf(out, "Battle %s  round %d  %s\n", record.ID, session.Round, narrate.Outcome(session.State))
	printParty(cmd, n, "You", session.Player)
	printParty(cmd, n, "Opponent", session.Opponent)
}

func printParty(cmd *cobra.Command, n *narrate.Narrator, label string, party *battle.PartyData) {
	out := cmd.OutOrStdout()
	if party == nil {
		return
	}

	fmt.Fprintf(out, "  %s:\n", label)
	for i, c := range party.Creatures {
		marker := " "
		if i == party.Active {
			marker = "*"
		}
		fmt.Fprintf(out, "   %s[%d] %-20s Lv.%-3d HP %d\n", marker, i, n.Name(c.ID), c.Level, c.HP)
	}
}
