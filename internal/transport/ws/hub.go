package ws

import (
	"context"
	"encoding/json"
	"sync"

	"nnx1/internal/service"
	"nnx1/pkg/logger"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Session message types, named by the services that publish them
const (
	MsgDeliveryStatus   MessageType = service.MsgDeliveryStatus
	MsgSessionCompleted MessageType = service.MsgSessionCompleted
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans session events out to every connection watching that session
type Hub struct {
	// sessionID -> open connections (one per browser tab)
	sessions map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	log logger.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message for every subscriber of a session
type BroadcastMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates a hub and starts its event loop
func NewHub(log logger.Logger) *Hub {
	h := &Hub{
		sessions:   make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		log:        log.Named("ws"),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	ctx := context.Background()
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.sessions {
				for conn := range conns {
					close(conn.Send)
				}
			}
			h.sessions = map[string]map[*Connection]struct{}{}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.sessions[conn.SessionID] == nil {
				h.sessions[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.sessions[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug(ctx, "subscriber connected", logger.String("sessionId", conn.SessionID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.sessions[conn.SessionID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.sessions, conn.SessionID)
					}
					h.log.Debug(ctx, "subscriber disconnected", logger.String("sessionId", conn.SessionID))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Warn(ctx, "marshal ws message failed", logger.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.sessions[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close stops the event loop and closes every subscriber
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Subscribers returns the number of open connections for a session
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// BroadcastToSession sends a message to every subscriber of a session
// (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Warn(context.Background(), "marshal ws payload failed", logger.String("type", msgType), logger.Error(err))
		return
	}
	msg := &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
