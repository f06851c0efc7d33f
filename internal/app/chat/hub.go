/*
Package chat contains the room-membership and message-broadcast core.

This file defines the Hub, which tracks the broadcast groups: the set of live
connections currently subscribed to each room. Group membership is scoped to a
connection's lifetime; a reconnecting client must re-identify to resubscribe.
*/
package chat

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"youapp/internal/pkg/logx"
)

// Outbox is the send side of a live connection. Enqueue reports false when
// the connection can no longer accept frames.
type Outbox interface {
	Enqueue(payload []byte) bool
}

// Hub maps room ids to the outboxes subscribed to them.
type Hub struct {
	// mu protects both maps.
	mu sync.RWMutex

	// groups holds the subscribers per room id.
	groups map[string]map[Outbox]struct{}

	// subscriptions indexes each outbox's rooms for cleanup on disconnect.
	subscriptions map[Outbox]map[string]struct{}

	logger zerolog.Logger
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		groups:        make(map[string]map[Outbox]struct{}),
		subscriptions: make(map[Outbox]map[string]struct{}),
		logger:        logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Subscribe adds the outbox to the room's broadcast group. Subscribing twice
// is a no-op.
func (h *Hub) Subscribe(roomID string, o Outbox) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[roomID]
	if !ok {
		group = make(map[Outbox]struct{})
		h.groups[roomID] = group
	}
	group[o] = struct{}{}

	rooms, ok := h.subscriptions[o]
	if !ok {
		rooms = make(map[string]struct{})
		h.subscriptions[o] = rooms
	}
	rooms[roomID] = struct{}{}
}

// Drop removes the outbox from every broadcast group it belongs to.
func (h *Hub) Drop(o Outbox) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomID := range h.subscriptions[o] {
		delete(h.groups[roomID], o)
		if len(h.groups[roomID]) == 0 {
			delete(h.groups, roomID)
		}
	}
	delete(h.subscriptions, o)
}

// Subscribers returns the number of outboxes in the room's broadcast group.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.groups[roomID])
}

// Broadcast marshals the event once and fans it out to every subscriber of
// the room. Outboxes that can no longer accept frames are dropped from all
// groups.
func (h *Hub) Broadcast(roomID string, event Envelope) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event.Event).Msg("Error marshaling event for broadcast.")
		return
	}

	var stale []Outbox

	h.mu.RLock()
	for o := range h.groups[roomID] {
		if !o.Enqueue(payload) {
			stale = append(stale, o)
		}
	}
	h.mu.RUnlock()

	for _, o := range stale {
		h.logger.Warn().Str("room_id", roomID).Msg("Subscriber outbox full or closed, dropping from all groups.")
		h.Drop(o)
	}
}
