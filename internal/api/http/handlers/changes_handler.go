package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/realtime"
)

// ChangesHandler streams store change events over websocket.
type ChangesHandler struct {
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewChangesHandler constructs handler.
func NewChangesHandler(hub *realtime.Hub, logger *zap.Logger) *ChangesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangesHandler{hub: hub, logger: logger}
}

// Upgrade rejects plain HTTP requests to the change feed.
func (h *ChangesHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// Stream GET /ws/changes.
func (h *ChangesHandler) Stream() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *ChangesHandler) serve(conn *websocket.Conn) {
	client := h.hub.Register()
	defer func() {
		h.hub.Unregister(client)
		_ = conn.Close()
	}()

	// the reader only detects the peer going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("change feed write failed", zap.Error(err))
				return
			}
		case <-closed:
			return
		}
	}
}
