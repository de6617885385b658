package room

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 54 * time.Second
	writeWait    = 10 * time.Second
)

// WebSocketHandler accepts client connections and binds their transport
// lifecycle (open, inbound frame, close, error) to the hub.
type WebSocketHandler struct {
	hub        *Hub
	sendBuffer int
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler builds the acceptor. allowedOrigin of "*" admits any
// browser origin.
func NewWebSocketHandler(hub *Hub, sendBuffer int, allowedOrigin string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}

	s := newSession(uuid.NewString(), h.sendBuffer)
	log.Printf("[websocket] new connection session=%s", s.id)

	go h.writeLoop(conn, s)
	h.hub.register(s)
	h.readLoop(conn, s)
}

// readLoop feeds inbound frames to the hub until the connection dies. Close
// and error are the same thing here: both end the session.
func (h *WebSocketHandler) readLoop(conn *websocket.Conn, s *session) {
	defer h.hub.disconnect(s)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[websocket] read error session=%s: %v", s.id, err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(pongWait))
		h.hub.inbound(s, data)
	}
}

// writeLoop is the sole writer on the connection. It drains the session's
// outbound queue in order and keeps the peer alive with pings.
func (h *WebSocketHandler) writeLoop(conn *websocket.Conn, s *session) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case frame, ok := <-s.send:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Printf("[websocket] write failed session=%s: %v", s.id, err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
