package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/opponent"
	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/narrate"
)

var (
	simSeed      uint64
	simZone      string
	simParty     []string
	simLevel     int
	simMaxRounds int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a wild battle locally and narrate it",
	Long: `Simulate spawns a wild creature from a zone and fights it with a party
where both sides pick their moves at random. The same seed replays the same
battle.

  simulate --seed 7 --zone VIRIDIAN_FOREST --party PIKACHU,BULBASAUR --level 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := simulate(cmd.Context(), cmd.OutOrStdout(), &simulationConfig{
			Seed:      simSeed,
			ZoneID:    simZone,
			Party:     simParty,
			Level:     simLevel,
			MaxRounds: simMaxRounds,
		})
		return err
	},
}

func init() {
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "Random seed, 0 for crypto randomness")
	simulateCmd.Flags().StringVar(&simZone, "zone", "ROUTE_1", "Zone the wild creature comes from")
	simulateCmd.Flags().StringSliceVar(&simParty, "party", []string{"PIKACHU"}, "Species of the player's party in send-out order")
	simulateCmd.Flags().IntVar(&simLevel, "level", 10, "Level of the player's creatures")
	simulateCmd.Flags().IntVar(&simMaxRounds, "max-rounds", 100, "Stop after this many rounds")
}

type simulationConfig struct {
	Seed      uint64
	ZoneID    string
	Party     []string
	Level     int
	MaxRounds int
}

func (c *simulationConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("ZoneID", c.ZoneID, vb)
	if len(c.Party) == 0 {
		vb.RequiredField("Party")
	}
	errors.ValidateRange("Level", c.Level, 1, pokemon.MaxLevel, vb)
	if c.MaxRounds <= 0 {
		vb.Field("MaxRounds", "must be positive")
	}

	return vb.Build()
}

// simulate plays one wild battle to the end or to MaxRounds and returns the
// final state
func simulate(ctx context.Context, out io.Writer, cfg *simulationConfig) (battle.State, error) {
	if err := cfg.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid simulation")
	}

	cat, err := catalog.LoadDefault()
	if err != nil {
		return "", err
	}
	zone, err := cat.Zone(cfg.ZoneID)
	if err != nil {
		return "", err
	}

	var src random.Source = random.NewSource()
	if cfg.Seed != 0 {
		src = random.NewSeededSource(cfg.Seed)
	}

	engine, err := battle.NewEngine(&battle.Config{Random: src, Chart: cat.Chart()})
	if err != nil {
		return "", err
	}
	chooser, err := opponent.NewRandom(src)
	if err != nil {
		return "", err
	}

	party := make([]*pokemon.Creature, 0, len(cfg.Party))
	for i, speciesID := range cfg.Party {
		species, err := cat.SpeciesByID(speciesID)
		if err != nil {
			return "", err
		}
		c, err := pokemon.NewCreature(&pokemon.CreatureConfig{
			ID:      fmt.Sprintf("player-%d", i+1),
			Species: species,
			Level:   cfg.Level,
			Moves:   species.DefaultLearnedMoves(cfg.Level),
			Random:  src,
		})
		if err != nil {
			return "", err
		}
		party = append(party, c)
	}

	foe, err := zone.Spawn(src, "wild-1")
	if err != nil {
		return "", err
	}

	session, err := battle.NewSession(&battle.SessionConfig{
		ID:       "simulation",
		Engine:   engine,
		Player:   party,
		Opponent: []*pokemon.Creature{foe},
		Wild:     true,
	})
	if err != nil {
		return "", err
	}

	n := narrate.New(session.ToData())
	fmt.Fprintf(out, "A wild %s appeared! (Lv. %d)\n", narrate.DisplayName(foe.Species().ID), foe.Level())
	fmt.Fprintf(out, "Go! %s!\n", n.Name(party[0].ID()))

	for session.Round() < cfg.MaxRounds && !session.State().Terminal() {
		if session.State() == battle.StateAwaitingReplacement {
			next := session.Party(battle.SidePlayer).NextConscious()
			if _, err := session.ReplaceFainted(ctx, next); err != nil {
				return "", err
			}
			fmt.Fprintf(out, "Go! %s!\n", n.Name(session.Active(battle.SidePlayer).ID()))
			continue
		}

		playerAction, err := chooser.Choose(session.Active(battle.SidePlayer))
		if err != nil {
			return "", err
		}
		opponentAction, err := chooser.Choose(session.Active(battle.SideOpponent))
		if err != nil {
			return "", err
		}

		result, err := session.ResolveRound(ctx, playerAction, opponentAction)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(out, "\n-- Round %d --\n", result.Round)
		for _, line := range n.Round(result) {
			fmt.Fprintln(out, line)
		}
		printStatus(out, n, session)
	}

	state := session.State()
	fmt.Fprintf(out, "\n%s after %d rounds\n", narrate.Outcome(state), session.Round())
	return state, nil
}

func printStatus(out io.Writer, n *narrate.Narrator, session *battle.Session) {
	for _, side := range []battle.SideID{battle.SidePlayer, battle.SideOpponent} {
		c := session.Active(side)
		fmt.Fprintf(out, "  %-20s Lv.%-3d HP %3d/%-3d\n", n.Name(c.ID()), c.Level(), c.HP(), c.MaxHP())
	}
}
