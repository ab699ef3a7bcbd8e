// Package feed streams battle notifications to websocket watchers.
//
// A watcher connects to GET /battles/{id}/feed and receives every
// notification of that battle as a JSON text message. The connection is
// closed normally after the battle ends.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
)

// Defaults
const (
	DefaultSendBuffer   = 16
	DefaultWriteTimeout = 10 * time.Second
)

// Config holds the dependencies for the hub
type Config struct {
	EventBus events.EventBus

	// SendBuffer is how many notifications may queue for one watcher before
	// it is dropped
	SendBuffer   int
	WriteTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.SendBuffer < 0 {
		vb.Field("SendBuffer", "must not be negative")
	}
	if c.WriteTimeout < 0 {
		vb.Field("WriteTimeout", "must not be negative")
	}

	return vb.Build()
}

// Hub fans battle notifications out to websocket watchers
type Hub struct {
	bus          events.EventBus
	upgrader     websocket.Upgrader
	sendBuffer   int
	writeTimeout time.Duration

	mu       sync.Mutex
	watchers map[string]map[*watcher]struct{}
	subs     []string
}

type watcher struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub subscribed to every battle event
func NewHub(cfg *Config) (*Hub, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	h := &Hub{
		bus:          cfg.EventBus,
		sendBuffer:   cfg.SendBuffer,
		writeTimeout: cfg.WriteTimeout,
		watchers:     make(map[string]map[*watcher]struct{}),
	}
	if h.sendBuffer == 0 {
		h.sendBuffer = DefaultSendBuffer
	}
	if h.writeTimeout == 0 {
		h.writeTimeout = DefaultWriteTimeout
	}

	for _, topic := range battle.Topics {
		h.subs = append(h.subs, h.bus.SubscribeFunc(topic, 0, h.handle))
	}
	return h, nil
}

// Routes returns the HTTP handler serving the feed
func (h *Hub) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /battles/{id}/feed", h.serveFeed)
	return mux
}

// Watchers returns the number of watchers of a battle
func (h *Hub) Watchers(battleID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[battleID])
}

// Close unsubscribes from the bus and disconnects every watcher
func (h *Hub) Close() error {
	for _, id := range h.subs {
		if err := h.bus.Unsubscribe(id); err != nil {
			return errors.Wrap(err, "failed to unsubscribe feed")
		}
	}
	h.subs = nil

	h.mu.Lock()
	defer h.mu.Unlock()
	for battleID, set := range h.watchers {
		for w := range set {
			close(w.send)
		}
		delete(h.watchers, battleID)
	}
	return nil
}

func (h *Hub) handle(_ context.Context, e events.Event) error {
	n, ok := battle.NotificationFrom(e)
	if !ok {
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "failed to encode notification")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for w := range h.watchers[n.BattleID] {
		select {
		case w.send <- payload:
		default:
			slog.Warn("Dropping slow feed watcher", "battle_id", n.BattleID)
			h.removeLocked(n.BattleID, w)
		}
	}
	if n.Type == battle.EventEnded {
		for w := range h.watchers[n.BattleID] {
			h.removeLocked(n.BattleID, w)
		}
	}
	return nil
}

func (h *Hub) serveFeed(w http.ResponseWriter, r *http.Request) {
	battleID := r.PathValue("id")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		slog.Debug("Feed upgrade failed", "battle_id", battleID, "error", err)
		return
	}

	wt := &watcher{conn: conn, send: make(chan []byte, h.sendBuffer)}
	h.mu.Lock()
	if h.watchers[battleID] == nil {
		h.watchers[battleID] = make(map[*watcher]struct{})
	}
	h.watchers[battleID][wt] = struct{}{}
	h.mu.Unlock()

	slog.Debug("Feed watcher connected", "battle_id", battleID)

	go h.readLoop(battleID, wt)
	h.writeLoop(wt)
}

// readLoop discards incoming messages and notices the watcher leaving
func (h *Hub) readLoop(battleID string, w *watcher) {
	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			h.remove(battleID, w)
			return
		}
	}
}

func (h *Hub) writeLoop(w *watcher) {
	defer func() { _ = w.conn.Close() }()

	for payload := range w.send {
		if err := w.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
			return
		}
		if err := w.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}

	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(h.writeTimeout))
}

func (h *Hub) remove(battleID string, w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(battleID, w)
}

func (h *Hub) removeLocked(battleID string, w *watcher) {
	set, ok := h.watchers[battleID]
	if !ok {
		return
	}
	if _, ok := set[w]; !ok {
		return
	}

	delete(set, w)
	close(w.send)
	if len(set) == 0 {
		delete(h.watchers, battleID)
	}
}
