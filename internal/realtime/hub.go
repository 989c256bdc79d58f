// Package realtime keeps open group views consistent with the store.
//
// The strategy is deliberately coarse: any row change inside a group marks
// that group dirty, and a single per-group consumer coalesces bursts of
// events into one full snapshot reload. No incremental patching, no merging
// of deltas into client-held aggregates.
package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"juntaai-backend/internal/ledger"
)

// SummaryLoader recomputes a group's derived state from a fresh snapshot.
type SummaryLoader interface {
	GetSummary(ctx context.Context, groupID string) (*ledger.Summary, error)
}

// Subscription delivers recomputed summaries for one group. The channel
// holds only the latest summary; slow consumers skip intermediate states
// rather than lagging behind.
type Subscription struct {
	C <-chan *ledger.Summary

	hub     *Hub
	groupID string
	ch      chan *ledger.Summary
	once    sync.Once
}

// Close tears the subscription down. A reload already in flight may still
// complete, but its result is discarded, never delivered here.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

type groupState struct {
	dirty  chan struct{}
	subs   map[*Subscription]struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// Hub fans change notifications out to group subscribers. One reload
// goroutine runs per group with at least one open subscription.
type Hub struct {
	loader   SummaryLoader
	coalesce time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	groups map[string]*groupState
}

func NewHub(loader SummaryLoader, coalesce time.Duration, log *slog.Logger) *Hub {
	return &Hub{
		loader:   loader,
		coalesce: coalesce,
		log:      log,
		groups:   make(map[string]*groupState),
	}
}

// Subscribe opens a group view. The subscriber receives an initial summary
// shortly after subscribing, then one per settled burst of changes.
func (h *Hub) Subscribe(groupID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.groups[groupID]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		st = &groupState{
			dirty:  make(chan struct{}, 1),
			subs:   make(map[*Subscription]struct{}),
			ctx:    ctx,
			cancel: cancel,
		}
		h.groups[groupID] = st
		go h.watch(groupID, st)
	}

	sub := &Subscription{hub: h, groupID: groupID, ch: make(chan *ledger.Summary, 1)}
	sub.C = sub.ch
	st.subs[sub] = struct{}{}

	markDirty(st)
	return sub
}

// MarkDirty records that something inside the group changed. A no-op when
// nobody is watching the group.
func (h *Hub) MarkDirty(groupID string) {
	h.mu.Lock()
	st, ok := h.groups[groupID]
	h.mu.Unlock()
	if ok {
		markDirty(st)
	}
}

func markDirty(st *groupState) {
	select {
	case st.dirty <- struct{}{}:
	default: // already dirty, the pending reload covers this event too
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.groups[sub.groupID]
	if !ok {
		return
	}
	delete(st.subs, sub)
	close(sub.ch)
	if len(st.subs) == 0 {
		st.cancel()
		delete(h.groups, sub.groupID)
	}
}

// watch is the single consumer for one group: wait for a dirty marker, let
// the burst settle, reload once, broadcast.
func (h *Hub) watch(groupID string, st *groupState) {
	for {
		select {
		case <-st.ctx.Done():
			return
		case <-st.dirty:
		}

		// Let rapid events collapse into one snapshot read.
		select {
		case <-st.ctx.Done():
			return
		case <-time.After(h.coalesce):
		}
		drain(st.dirty)

		summary, err := h.loader.GetSummary(st.ctx, groupID)
		if err != nil {
			if st.ctx.Err() != nil {
				return
			}
			h.log.Error("group reload failed", "group_id", groupID, "error", err)
			continue
		}
		h.broadcast(groupID, st, summary)
	}
}

func drain(ch chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func (h *Hub) broadcast(groupID string, st *groupState, summary *ledger.Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A reload that finished after teardown is stale; the state has been
	// replaced or removed and the result must not be applied.
	if h.groups[groupID] != st {
		return
	}
	for sub := range st.subs {
		select {
		case sub.ch <- summary:
		default:
			// Replace the undelivered summary with the newer one.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- summary
		}
	}
}
