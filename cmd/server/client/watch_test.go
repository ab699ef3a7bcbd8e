package client

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
	"github.com/KirkDiggler/rpg-battle/internal/handlers/feed"
	battleorch "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-battle/internal/testutils"
)

func TestFeedURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8081/battles/battle_1/feed", feedURL("ws://localhost:8081", "battle_1"))
	assert.Equal(t, "ws://feed/battles/a%2Fb/feed", feedURL("ws://feed/", "a/b"))
}

func TestWatchNarratesUntilTheBattleEnds(t *testing.T) {
	cat := testutils.Catalog(t)
	pika := testutils.Creature(t, cat, "pika-1", "PIKACHU", 10)
	pidgey := testutils.Creature(t, cat, "wild-1", "PIDGEY", 3)

	bus := events.NewBus()
	hub, err := feed.NewHub(&feed.Config{EventBus: bus, WriteTimeout: time.Second})
	require.NoError(t, err)
	server := httptest.NewServer(hub.Routes())
	t.Cleanup(func() {
		_ = hub.Close()
		server.Close()
	})

	session := &battle.SessionData{
		ID:       "battle-1",
		Wild:     true,
		Player:   &battle.PartyData{Creatures: []*pokemon.CreatureData{pika.ToData()}},
		Opponent: &battle.PartyData{Creatures: []*pokemon.CreatureData{pidgey.ToData()}},
	}

	var out bytes.Buffer
	errCh := make(chan error, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() {
		base := "ws" + strings.TrimPrefix(server.URL, "http")
		errCh <- watch(ctx, &out, feedURL(base, "battle-1"))
	}()

	require.Eventually(t, func() bool {
		return hub.Watchers("battle-1") == 1
	}, time.Second, 10*time.Millisecond)

	publish := func(n *battleorch.Notification) {
		n.BattleID = "battle-1"
		n.Session = session
		require.NoError(t, bus.Publish(context.Background(), battleorch.NewEvent(n, pika, pidgey)))
	}
	publish(&battleorch.Notification{Type: battleorch.EventStarted, State: battle.StateAwaitingActions})
	publish(&battleorch.Notification{
		Type:  battleorch.EventRoundResolved,
		Round: 1,
		State: battle.StateVictory,
		Result: &battle.RoundResult{
			Round: 1,
			Messages: []battle.Message{
				{Code: battle.MessageMoveUsed, Side: battle.SidePlayer, CreatureID: "pika-1", MoveID: "THUNDER_SHOCK"},
				{Code: battle.MessageFainted, Side: battle.SideOpponent, CreatureID: "wild-1"},
			},
		},
	})
	publish(&battleorch.Notification{Type: battleorch.EventEnded, State: battle.StateVictory})

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not return after the battle ended")
	}

	assert.Equal(t, strings.Join([]string{
		"Battle battle-1 started",
		"Wild Pidgey appeared! (Lv. 3)",
		"-- Round 1 --",
		"Pikachu used Thunder Shock!",
		"Wild Pidgey fainted!",
		"Battle over: Victory",
		"",
	}, "\n"), out.String())
}

func TestWatchFailsWithoutFeed(t *testing.T) {
	server := httptest.NewServer(nil)
	server.Close()

	base := "ws" + strings.TrimPrefix(server.URL, "http")
	err := watch(context.Background(), &bytes.Buffer{}, feedURL(base, "battle-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to feed")
}
