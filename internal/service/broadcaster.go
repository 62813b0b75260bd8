package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
}

// Message types pushed to session subscribers
const (
	MsgDeliveryStatus   = "delivery_status"
	MsgSessionCompleted = "session_completed"
)
