package room

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/samber/lo"

	"chatroom/internal/model/room"
	roomservice "chatroom/internal/service/room"
)

const defaultSendBuffer = 32

const welcomeText = "Welcome to the chat room!"

// Hub routes decoded client commands to registry mutations and fans the
// resulting events out to connected sessions. One mutex serializes every
// connect, inbound frame, and disconnect to completion: the mutation and the
// decision of who receives what are atomic per event, which is what makes
// roster frames exact and delivery per-session FIFO. Nothing under the mutex
// blocks — all sends are non-blocking enqueues onto per-session queues.
type Hub struct {
	svc *roomservice.Service

	mu       sync.Mutex
	sessions map[string]*session
}

// NewHub wires the hub to its registry.
func NewHub(svc *roomservice.Service) *Hub {
	return &Hub{
		svc:      svc,
		sessions: make(map[string]*session),
	}
}

// register admits a new session and greets it with the welcome notice and the
// current roster, before any join from it is processed.
func (h *Hub) register(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[s.id] = s
	metricOpenConnections.Inc()

	h.deliver(room.NewSystemEvent(room.EventMessage, welcomeText), []*session{s})
	h.deliver(h.svc.RosterSnapshot(), []*session{s})
}

// inbound processes one raw frame from the session.
func (h *Hub) inbound(s *session, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cmd, err := room.DecodeCommand(data)
	if err != nil {
		h.notify(s, "Error: Invalid message format")
		return
	}

	switch cmd := cmd.(type) {
	case room.JoinCommand:
		h.handleJoin(s, cmd.Username)
	case room.PostCommand:
		h.handlePost(s, cmd.Content)
	case room.UnknownCommand:
		h.notify(s, "Error: Unknown message type")
	}
}

// disconnect removes the session and, if it had joined, tells the room.
// Safe to call more than once; only the first call has any effect.
func (h *Hub) disconnect(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.id]; !ok {
		return
	}
	delete(h.sessions, s.id)
	close(s.send)
	metricOpenConnections.Dec()

	name, wasJoined := h.svc.Leave(s.id)
	if !wasJoined {
		return
	}
	metricJoinedUsers.Dec()

	remaining := h.joinedSessions()
	h.deliver(room.NewSystemEvent(room.EventUserLeft, name+" left the chat"), remaining)
	h.deliver(h.svc.RosterSnapshot(), remaining)
}

func (h *Hub) handleJoin(s *session, rawName string) {
	name, err := h.svc.Join(s.id, rawName)
	if err != nil {
		switch err {
		case roomservice.ErrAlreadyJoined:
			log.Printf("[hub] duplicate join ignored session=%s", s.id)
		default:
			h.notify(s, "Error: "+err.Error())
		}
		return
	}

	s.username = name
	metricJoinedUsers.Inc()

	joined := h.joinedSessions()
	h.deliver(room.NewSystemEvent(room.EventUserJoin, name+" joined the chat"), joined)
	h.deliver(h.svc.RosterSnapshot(), joined)

	// The newcomer alone gets the retained history, one frame per message.
	for _, event := range h.svc.HistorySnapshot() {
		h.deliver(event, []*session{s})
	}
}

func (h *Hub) handlePost(s *session, content string) {
	event, err := h.svc.RecordMessage(s.id, content)
	if err != nil {
		// Unjoined or empty messages are dropped without a reply.
		return
	}
	metricMessagesTotal.Inc()
	h.deliver(event, h.joinedSessions())
}

// notify sends a system notice to a single session.
func (h *Hub) notify(s *session, content string) {
	h.deliver(room.NewSystemEvent(room.EventMessage, content), []*session{s})
}

// deliver encodes the event once and offers it to every target. A failed
// enqueue is logged and counted for that session only; it never aborts the
// batch and never removes the session — dead connections surface through the
// transport's own close path.
func (h *Hub) deliver(event room.Event, targets []*session) {
	frame, err := json.Marshal(event)
	if err != nil {
		log.Printf("[hub] encode event failed: %v", err)
		return
	}

	for _, target := range targets {
		if !target.enqueue(frame) {
			metricDeliveryDrops.Inc()
			log.Printf("[hub] dropped frame for slow session=%s type=%s", target.id, event.Type)
		}
	}
}

// joinedSessions snapshots the current broadcast set. Callers hold h.mu.
func (h *Hub) joinedSessions() []*session {
	return lo.Filter(lo.Values(h.sessions), func(s *session, _ int) bool {
		return s.joined()
	})
}

// ConnectedUserCount reports the number of joined sessions for the status
// endpoint.
func (h *Hub) ConnectedUserCount() int {
	return h.svc.ConnectedUserCount()
}
