package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	battleorch "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/narrate"
)

var watchCmd = &cobra.Command{
	Use:   "watch [battle-id]",
	Short: "Follow a battle as its rounds resolve",
	Long: `Watch connects to the websocket feed and narrates every event of a
battle until it ends or you interrupt it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return watch(ctx, cmd.OutOrStdout(), feedURL(feedAddr, args[0]))
	},
}

func feedURL(base, battleID string) string {
	return strings.TrimSuffix(base, "/") + "/battles/" + url.PathEscape(battleID) + "/feed"
}

// watch prints the notifications of a feed until the server closes it or ctx
// is done
func watch(ctx context.Context, out io.Writer, feed string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, feed, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to feed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var n battleorch.Notification
		if err := conn.ReadJSON(&n); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read feed: %w", err)
		}
		printNotification(out, &n)
	}
}

func printNotification(out io.Writer, n *battleorch.Notification) {
	narrator := narrate.New(n.Session)

	switch n.Type {
	case battleorch.EventStarted:
		fmt.Fprintf(out, "Battle %s started\n", n.BattleID)
		if n.Session != nil && n.Session.Opponent != nil && len(n.Session.Opponent.Creatures) > 0 {
			foe := n.Session.Opponent.Creatures[n.Session.Opponent.Active]
			fmt.Fprintf(out, "%s appeared! (Lv. %d)\n", narrator.Name(foe.ID), foe.Level)
		}
	case battleorch.EventRoundResolved:
		fmt.Fprintf(out, "-- Round %d --\n", n.Round)
		for _, line := range narrator.Round(n.Result) {
			fmt.Fprintln(out, line)
		}
	case battleorch.EventReplaced:
		if n.Shift != nil {
			fmt.Fprintf(out, "Go! %s!\n", narrator.Name(n.Shift.ActiveID))
		}
	case battleorch.EventEnded:
		fmt.Fprintf(out, "Battle over: %s\n", narrate.Outcome(n.State))
	}
}
