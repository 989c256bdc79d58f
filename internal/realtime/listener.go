package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// Channel is the LISTEN/NOTIFY channel the repositories emit change events
// on. Payloads are {"group_id": ..., "table": ...}.
const Channel = "group_changes"

type changeEvent struct {
	GroupID string `json:"group_id"`
	Table   string `json:"table"`
}

// Listener bridges the store's change feed into the hub. Reconnects are
// handled by pq.Listener; after a reconnect a nil notification arrives and
// subscribers resync via their next reload anyway.
type Listener struct {
	pql *pq.Listener
	hub *Hub
	log *slog.Logger
}

func NewListener(connStr string, minReconnect, maxReconnect time.Duration, hub *Hub, log *slog.Logger) *Listener {
	pql := pq.NewListener(connStr, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("change feed listener event", "event", int(ev), "error", err)
		}
	})
	return &Listener{pql: pql, hub: hub, log: log}
}

// Run blocks until ctx is cancelled, feeding change events into the hub.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.pql.Listen(Channel); err != nil {
		return fmt.Errorf("listen on %s: %w", Channel, err)
	}
	defer l.pql.Close()

	l.log.Info("change feed listener started", "channel", Channel)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-l.pql.Notify:
			if n == nil {
				// Connection re-established; events may have been lost.
				continue
			}
			var ev changeEvent
			if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
				l.log.Warn("malformed change event", "payload", n.Extra, "error", err)
				continue
			}
			l.log.Debug("change event", "group_id", ev.GroupID, "table", ev.Table)
			l.hub.MarkDirty(ev.GroupID)
		case <-time.After(90 * time.Second):
			go func() {
				if err := l.pql.Ping(); err != nil {
					l.log.Warn("change feed ping failed", "error", err)
				}
			}()
		}
	}
}
