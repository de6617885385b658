package room

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types carried on the wire.
const (
	EventMessage  = "message"
	EventUserJoin = "user_joined"
	EventUserLeft = "user_left"
	EventUserList = "user_list"
)

// SystemUsername attributes server-generated events.
const SystemUsername = "System"

// Event is a single outbound chat event. Values are immutable once built.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
	UserID    string `json:"userId,omitempty"`
}

// Member is one roster entry inside a user_list event.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NewEventID returns a time-prefixed id unique per event. The millisecond
// prefix keeps ids sortable for display; the suffix breaks ties.
func NewEventID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewMessageEvent builds a user message attributed to the given session.
func NewMessageEvent(sessionID, username, content string) Event {
	return Event{
		ID:        NewEventID(),
		Type:      EventMessage,
		Content:   content,
		Username:  username,
		Timestamp: time.Now().UnixMilli(),
		UserID:    sessionID,
	}
}

// NewSystemEvent builds a server-generated event of the given type.
func NewSystemEvent(eventType, content string) Event {
	return Event{
		ID:        NewEventID(),
		Type:      eventType,
		Content:   content,
		Username:  SystemUsername,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewRosterEvent builds a user_list event whose content is the serialized
// member list.
func NewRosterEvent(members []Member) Event {
	content, err := json.Marshal(members)
	if err != nil {
		content = []byte("[]")
	}
	return Event{
		ID:        NewEventID(),
		Type:      EventUserList,
		Content:   string(content),
		Username:  SystemUsername,
		Timestamp: time.Now().UnixMilli(),
	}
}
