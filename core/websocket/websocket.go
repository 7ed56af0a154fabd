package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"backoffice/core/logger"
	"backoffice/core/router"

	"github.com/gorilla/websocket"
)

// Message is the envelope broadcast to connected clients
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub fans application events out to connected websocket clients.
// The back-office UI uses it for live search activity.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
	logger  logger.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// InitWebSocketModule creates a hub and registers the /ws route
func InitWebSocketModule(group *router.RouterGroup, log logger.Logger) *Hub {
	hub := &Hub{
		clients: make(map[*client]bool),
		logger:  log,
	}
	group.GET("/ws", hub.handleConnection)
	return hub
}

// Broadcast sends an event to every connected client
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal websocket message", logger.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow client, drop the message rather than block the emitter
		}
	}
}

func (h *Hub) handleConnection(ctx *router.Context) error {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", logger.String("error", err.Error()))
		return nil
	}

	c := &client{conn: conn, send: make(chan []byte, 32)}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

func (h *Hub) writePump(c *client) {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}
	}
	c.conn.Close()
}

func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}
