package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 65536
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The bridge only listens on a local address.
		return true
	},
}

// Client is one UI connection.
type Client struct {
	hub     *Hub
	send    chan []byte
	replies chan []byte
	log     *slog.Logger
}

// Handler upgrades requests and attaches the connection to hub.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Warn("websocket upgrade failed", "error", err)
			return
		}

		client := &Client{
			hub:     hub,
			send:    make(chan []byte, sendBuffer),
			replies: make(chan []byte, 8),
			log:     hub.log,
		}
		if !hub.Register(client) {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
			_ = conn.Close()
			return
		}

		go client.writePump(conn)
		go client.readPump(conn)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case reply := <-c.replies:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads client commands until the connection closes.
func (c *Client) readPump(conn *websocket.Conn) {
	defer func() {
		c.hub.Unregister(c)
		_ = conn.Close()
	}()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		c.handle(data)
	}
}

// handle answers client commands. Only ping is understood.
func (c *Client) handle(data []byte) {
	var in struct {
		Type MessageType `json:"type"`
	}
	reply := NewMessage(TypePong, nil)
	switch err := json.Unmarshal(data, &in); {
	case err != nil:
		reply = NewMessage(TypeError, ErrorPayload{Code: "invalid_message", Message: "message is not valid JSON"})
	case in.Type != TypePing:
		reply = NewMessage(TypeError, ErrorPayload{
			Code:         "unknown_type",
			Message:      "unsupported message type",
			OriginalType: string(in.Type),
		})
	}

	out, err := reply.JSON()
	if err != nil {
		c.log.Error("encoding websocket reply failed", "error", err)
		return
	}
	select {
	case c.replies <- out:
	default:
		c.log.Warn("websocket reply dropped")
	}
}
