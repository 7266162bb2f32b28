// Package websocket delivers list mutation events to other live
// clients, so a session watching a shared list hears about edits as
// they land.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mbeaulieu/courses/internal/notify"
)

// Message is the wire form of a mutation event.
type Message struct {
	Type     string    `json:"type"` // "item_add", "item_edit", ...
	ItemName string    `json:"item_name"`
	ActorID  string    `json:"actor_id"`
	Actor    string    `json:"actor"`
	OwnerID  string    `json:"owner_id"`
	At       time.Time `json:"at"`
}

// NewMessage converts a mutation event for broadcast.
func NewMessage(ev notify.Event) Message {
	return Message{
		Type:     "item_" + string(ev.Type),
		ItemName: ev.ItemName,
		ActorID:  ev.ActorID,
		Actor:    ev.ActorName,
		OwnerID:  ev.OwnerID,
		At:       ev.At,
	}
}

// Hub maintains the set of connected clients and fans mutation events
// out to them. The actor's own connections are skipped; finer
// suppression (own-list viewing) happens in each session's feed.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// BroadcastMutation implements session.Broadcaster.
func (h *Hub) BroadcastMutation(ev notify.Event) {
	data, err := json.Marshal(NewMessage(ev))
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.userID == ev.ActorID {
			continue // never echo a mutation back to its author
		}
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
