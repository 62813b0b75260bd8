package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"nnx1/internal/service"
	"nnx1/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Handler handles WebSocket connections
type Handler struct {
	hub      *Hub
	authSvc  *service.AuthService
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigin "*" accepts any
// origin.
func NewHandler(hub *Hub, authSvc *service.AuthService, allowedOrigin string, log logger.Logger) *Handler {
	return &Handler{
		hub:     hub,
		authSvc: authSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || strings.EqualFold(origin, allowedOrigin)
			},
		},
		log: log.Named("ws"),
	}
}

// SessionWS handles GET /v1/ws/sessions/{sessionId}?token=
func (h *Handler) SessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.ValidateSessionToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.SessionID != sessionID {
		http.Error(w, "token not valid for this session", http.StatusForbidden)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}

	conn := &Connection{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
		Hub:       h.hub,
	}
	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Subscribers only listen; reads keep the pong deadline moving.
	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug(context.Background(), "websocket closed", logger.String("sessionId", conn.SessionID), logger.Error(err))
			}
			return
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
