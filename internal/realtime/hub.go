package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	pingEvery   = 30 * time.Second
	pongGrace   = 90 * time.Second
	writeWindow = 10 * time.Second
)

// client is one live connection. Writes are serialized through mu because
// both broadcasts and pings target the same socket.
type client struct {
	conn     *websocket.Conn
	mu       sync.Mutex
	lastPong time.Time
	done     chan struct{}
}

func (c *client) write(messageType int, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, payload)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWindow))
}

// Hub tracks which users hold a live WebSocket and pushes project events
// (chat messages, call presence changes) to them. Delivery is best-effort:
// a user without a connection misses the event and catches up over REST.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]*client
}

func NewHub() *Hub {
	h := &Hub{clients: make(map[uint]*client)}
	go h.reapStale()
	return h
}

// Register attaches a user's connection, replacing any previous one.
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	cl := &client{
		conn:     conn,
		lastPong: time.Now(),
		done:     make(chan struct{}),
	}

	conn.SetReadDeadline(time.Now().Add(pongGrace))
	conn.SetPongHandler(func(string) error {
		h.mu.Lock()
		if cur, ok := h.clients[userID]; ok && cur == cl {
			cur.lastPong = time.Now()
		}
		h.mu.Unlock()
		return conn.SetReadDeadline(time.Now().Add(pongGrace))
	})

	h.mu.Lock()
	if prev, ok := h.clients[userID]; ok {
		close(prev.done)
	}
	h.clients[userID] = cl
	total := len(h.clients)
	h.mu.Unlock()

	go h.keepAlive(userID, cl)

	log.Printf("User %d connected to hub (total: %d)", userID, total)
}

// Unregister drops a user's connection if present.
func (h *Hub) Unregister(userID uint) {
	h.mu.Lock()
	if cl, ok := h.clients[userID]; ok {
		close(cl.done)
		delete(h.clients, userID)
	}
	total := len(h.clients)
	h.mu.Unlock()
	log.Printf("User %d disconnected from hub (total: %d)", userID, total)
}

// IsOnline reports whether the user holds a live connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// Count returns the number of connected users.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastToUsers pushes one JSON-encoded event to every listed user that
// currently holds a connection. A failed write only logs; the read loop will
// notice the broken socket and unregister it.
func (h *Hub) BroadcastToUsers(userIDs []uint, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	h.mu.RLock()
	targets := make(map[uint]*client, len(userIDs))
	for _, id := range userIDs {
		if cl, ok := h.clients[id]; ok {
			targets[id] = cl
		}
	}
	h.mu.RUnlock()

	for id, cl := range targets {
		if err := cl.write(websocket.TextMessage, payload); err != nil {
			log.Printf("Error sending event to user %d: %v", id, err)
		}
	}
}

// keepAlive pings the connection until it is closed or replaced.
func (h *Hub) keepAlive(userID uint, cl *client) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			if err := cl.ping(); err != nil {
				log.Printf("Ping failed for user %d: %v", userID, err)
				h.dropIfCurrent(userID, cl)
				return
			}
		}
	}
}

// reapStale periodically removes connections whose last pong is too old.
func (h *Hub) reapStale() {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-pongGrace)

		h.mu.RLock()
		var stale []uint
		for id, cl := range h.clients {
			if cl.lastPong.Before(cutoff) {
				stale = append(stale, id)
			}
		}
		h.mu.RUnlock()

		for _, id := range stale {
			log.Printf("Removing stale connection for user %d (no pong received)", id)
			h.Unregister(id)
		}
	}
}

// dropIfCurrent unregisters the user only if cl is still their active
// connection, so a reconnect racing a failed ping is not torn down.
func (h *Hub) dropIfCurrent(userID uint, cl *client) {
	h.mu.Lock()
	if cur, ok := h.clients[userID]; ok && cur == cl {
		close(cur.done)
		delete(h.clients, userID)
	}
	h.mu.Unlock()
}
