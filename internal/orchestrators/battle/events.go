package battle

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	battlerepo "github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
)

// Event types published on the bus
const (
	EventStarted       = "battle.started"
	EventRoundResolved = "battle.round_resolved"
	EventReplaced      = "battle.replaced"
	EventEnded         = "battle.ended"
)

// Topics lists every event type the service publishes
var Topics = []string{EventStarted, EventRoundResolved, EventReplaced, EventEnded}

const payloadKey = "battle"

// Notification is the payload carried by every battle event
type Notification struct {
	Type     string              `json:"type"`
	BattleID string              `json:"battle_id"`
	OwnerID  string              `json:"owner_id"`
	State    battle.State        `json:"state"`
	Round    int                 `json:"round"`
	Result   *battle.RoundResult `json:"result,omitempty"`
	Shift    *battle.ShiftResult `json:"shift,omitempty"`
	Session  *battle.SessionData `json:"session"`
}

// NewEvent wraps a notification in a bus event. Source and target are the
// active creatures of the player and the opponent.
func NewEvent(n *Notification, source, target core.Entity) events.Event {
	e := events.NewGameEvent(n.Type, source, target)
	e.Context().Set(payloadKey, n)
	return e
}

// NotificationFrom extracts the payload of a battle event
func NotificationFrom(e events.Event) (*Notification, bool) {
	if e == nil || e.Context() == nil {
		return nil, false
	}
	v, ok := e.Context().Get(payloadKey)
	if !ok {
		return nil, false
	}
	n, ok := v.(*Notification)
	return n, ok
}

func (o *orchestrator) publish(ctx context.Context, eventType string, session *battle.Session, record *battlerepo.Record, n *Notification) {
	n.Type = eventType
	n.BattleID = record.ID
	n.OwnerID = record.OwnerID
	n.State = record.Session.State
	n.Round = record.Session.Round
	n.Session = record.Session

	e := NewEvent(n, session.Active(battle.SidePlayer), session.Active(battle.SideOpponent))

	// the battle is already saved at this point
	if err := o.eventBus.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "failed to publish battle event",
			"battle_id", record.ID,
			"event", eventType,
			"error", err,
		)
	}
}

// SubscribeAudit logs every battle event at info level and returns the
// subscription ids
func SubscribeAudit(bus events.EventBus) []string {
	ids := make([]string, 0, len(Topics))
	for _, topic := range Topics {
		ids = append(ids, bus.SubscribeFunc(topic, 100, func(ctx context.Context, e events.Event) error {
			n, ok := NotificationFrom(e)
			if !ok {
				return nil
			}
			slog.InfoContext(ctx, "Battle event",
				"event", n.Type,
				"battle_id", n.BattleID,
				"owner_id", n.OwnerID,
				"state", n.State,
				"round", n.Round,
			)
			return nil
		}))
	}
	return ids
}
