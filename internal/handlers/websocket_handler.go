package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/shubhamjanki/collabhub-backend/internal/realtime"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
)

type WebSocketHandler struct {
	userService *service.UserService
	hub         *realtime.Hub
}

func NewWebSocketHandler(userService *service.UserService, hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		userService: userService,
		hub:         hub,
	}
}

// GetHub returns the hub instance (useful for sending events from other handlers)
func (h *WebSocketHandler) GetHub() *realtime.Hub {
	return h.hub
}

// HandleWebSocket keeps a connection registered for event push. The server
// never processes inbound frames beyond pong-style keepalives; clients act
// through the HTTP API and receive events here.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID := c.Locals("userID").(uint)

	h.hub.Register(userID, c)

	go func() {
		if err := h.userService.TouchLastSeen(userID); err != nil {
			log.Printf("Failed to update last seen for user %d: %v", userID, err)
		}
	}()

	defer func() {
		h.hub.Unregister(userID)
		go func() {
			if err := h.userService.TouchLastSeen(userID); err != nil {
				log.Printf("Failed to update last seen for user %d: %v", userID, err)
			}
		}()
	}()

	log.Printf("User %d connected via WebSocket", userID)

	// Inbound frames only serve as liveness signals; the hub manages
	// ping/pong and read deadlines.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	log.Printf("User %d disconnected from WebSocket", userID)
}
