package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	battlev1alpha1 "github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/narrate"
	creaturerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
)

var creatureCmd = &cobra.Command{
	Use:   "creature",
	Short: "Manage owned creatures",
}

var createCreatureCmd = &cobra.Command{
	Use:   "create [owner-id] [species-id] [level]",
	Short: "Create a creature with rolled IVs and its default moves",
	Long: `Create a creature for an owner. Examples:

  create ash PIKACHU 5
  create ash CHARMANDER 8 --nickname Ember`,
	Args: cobra.ExactArgs(3),
	RunE: createCreature,
}

var getCreatureCmd = &cobra.Command{
	Use:   "get [creature-id]",
	Short: "Get a creature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp battlev1alpha1.CreatureResponse
		err := call(battlev1alpha1.CreatureServiceName, "GetCreature",
			&battlev1alpha1.CreatureIDRequest{CreatureID: args[0]}, &resp)
		if err != nil {
			return err
		}
		printCreature(cmd, resp.Creature)
		return nil
	},
}

var listCreaturesCmd = &cobra.Command{
	Use:   "list [owner-id]",
	Short: "List an owner's creatures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp battlev1alpha1.CreaturesResponse
		err := call(battlev1alpha1.CreatureServiceName, "ListCreatures",
			&battlev1alpha1.OwnerRequest{OwnerID: args[0]}, &resp)
		if err != nil {
			return err
		}
		if len(resp.Creatures) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s has no creatures\n", args[0])
		}
		for _, r := range resp.Creatures {
			printCreature(cmd, r)
		}
		return nil
	},
}

var healPartyCmd = &cobra.Command{
	Use:   "heal [owner-id]",
	Short: "Restore HP and PP of every creature an owner has",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp battlev1alpha1.CreaturesResponse
		err := call(battlev1alpha1.CreatureServiceName, "HealParty",
			&battlev1alpha1.OwnerRequest{OwnerID: args[0]}, &resp)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Healed %d creatures\n", len(resp.Creatures))
		return nil
	},
}

var learnMoveCmd = &cobra.Command{
	Use:   "learn-move [creature-id] [move-id]",
	Short: "Teach a creature a move it was offered",
	Long: `Teach a move the creature's species learns at or below its level. With
four moves known, --slot picks the move to forget.

  learn-move creature_123 THUNDERBOLT --slot 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := optionalInt(cmd, "slot")
		if err != nil {
			return err
		}

		var resp battlev1alpha1.CreatureResponse
		err = call(battlev1alpha1.CreatureServiceName, "LearnMove", &battlev1alpha1.LearnMoveRequest{
			CreatureID: args[0],
			MoveID:     args[1],
			Slot:       slot,
		}, &resp)
		if err != nil {
			return err
		}
		printCreature(cmd, resp.Creature)
		return nil
	},
}

func init() {
	createCreatureCmd.Flags().String("nickname", "", "Nickname of the creature")
	learnMoveCmd.Flags().Int("slot", 0, "Move slot to replace")

	creatureCmd.AddCommand(createCreatureCmd)
	creatureCmd.AddCommand(getCreatureCmd)
	creatureCmd.AddCommand(listCreaturesCmd)
	creatureCmd.AddCommand(healPartyCmd)
	creatureCmd.AddCommand(learnMoveCmd)
}

func createCreature(cmd *cobra.Command, args []string) error {
	level, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid level %q: %w", args[2], err)
	}
	nickname, err := cmd.Flags().GetString("nickname")
	if err != nil {
		return err
	}

	var resp battlev1alpha1.CreatureResponse
	err = call(battlev1alpha1.CreatureServiceName, "CreateCreature", &battlev1alpha1.CreateCreatureRequest{
		OwnerID:   args[0],
		SpeciesID: args[1],
		Level:     level,
		Nickname:  nickname,
	}, &resp)
	if err != nil {
		return err
	}

	printCreature(cmd, resp.Creature)
	return nil
}

func printCreature(cmd *cobra.Command, r *creaturerepo.Record) {
	out := cmd.OutOrStdout()
	if r == nil || r.Creature == nil {
		fmt.Fprintln(out, "(no creature)")
		return
	}

	c := r.Creature
	name := narrate.DisplayName(c.SpeciesID)
	if c.Nickname != "" {
		name = fmt.Sprintf("%s (%s)", c.Nickname, name)
	}
	fmt.Fprintf(out, "%s  %s  Lv.%d  HP %d  EXP %d\n", c.ID, name, c.Level, c.HP, c.Experience)
	for i, m := range c.Moves {
		fmt.Fprintf(out, "  [%d] %-16s PP %d/%d\n", i, narrate.DisplayName(m.MoveID), m.CurrentPP, m.PP)
	}
}
