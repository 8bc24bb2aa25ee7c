// Package realtime fans store change events out to websocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/events"
)

// Client is one connected subscriber. Send is closed when the hub drops it.
type Client struct {
	Send chan []byte
}

// Hub keeps the set of connected clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	buffer  int
	logger  *zap.Logger
}

// NewHub creates a hub whose clients buffer up to buffer messages.
func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		buffer:  buffer,
		logger:  logger,
	}
}

// Register adds a new client.
func (h *Hub) Register() *Client {
	client := &Client{Send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("realtime client registered", zap.Int("clients", total))
	return client
}

// Unregister removes a client and closes its channel. Safe to call twice.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues message for every client. Clients with a full buffer
// are dropped rather than blocking the publisher.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			delete(h.clients, client)
			close(client.Send)
			h.logger.Warn("realtime client too slow; dropped")
		}
	}
}

// HandleEvent is an events.EventHandler broadcasting the event as JSON.
func (h *Hub) HandleEvent(_ context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.Broadcast(body)
	return nil
}
