package websocket

import (
	"encoding/json"
	"time"

	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/notify"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeNotification   MessageType = "notification"
	TypeBusyChanged    MessageType = "busy.changed"
	TypeNavigation     MessageType = "navigation"
	TypeCalendarLoaded MessageType = "calendar.loaded"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	Kind           notify.Kind `json:"kind"`
	Visible        bool        `json:"visible"`
	RemainingWidth int         `json:"remainingWidth"`
}

// NewNotificationPayload copies m into a payload.
func NewNotificationPayload(m notify.Message) NotificationPayload {
	return NotificationPayload{
		Title:          m.Title,
		Content:        m.Content,
		Kind:           m.Kind,
		Visible:        m.Visible,
		RemainingWidth: m.RemainingWidth,
	}
}

// BusyPayload is the payload for busy.changed events.
type BusyPayload struct {
	Busy bool `json:"busy"`
}

// NavigationPayload is the payload for navigation events.
type NavigationPayload struct {
	Route string `json:"route"`
}

// CalendarPayload is the payload for calendar.loaded events.
type CalendarPayload struct {
	Items []calendar.Item `json:"items"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	OriginalType string `json:"original_type,omitempty"`
}
