package room

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"chatroom/internal/model/room"
)

var (
	ErrInvalidName   = errors.New("username cannot be empty")
	ErrNameTaken     = errors.New("username is already taken")
	ErrAlreadyJoined = errors.New("session already joined")
	ErrNotJoined     = errors.New("session has not joined")
	ErrEmptyMessage  = errors.New("message is empty")
)

// DefaultHistoryLimit bounds the retained message history.
const DefaultHistoryLimit = 100

// Service is the room registry: the single shared mutable state of the
// broker. All reads and mutations are serialized by one mutex, so no caller
// ever observes a half-applied join or leave. The registry performs no I/O;
// notification is the caller's job.
type Service struct {
	mu           sync.Mutex
	names        map[string]string // session id -> display name
	history      []room.Event
	historyLimit int
}

// NewService bootstraps an empty registry. A non-positive historyLimit falls
// back to DefaultHistoryLimit.
func NewService(historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{
		names:        make(map[string]string),
		history:      make([]room.Event, 0, historyLimit),
		historyLimit: historyLimit,
	}
}

// Join binds a display name to the session. The name is trimmed before
// validation; the comparison with other joined sessions is case-insensitive.
// Display names are immutable for the session's lifetime.
func (s *Service) Join(sessionID, rawName string) (string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return "", ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.names[sessionID]; ok {
		return "", ErrAlreadyJoined
	}

	folded := strings.ToLower(name)
	for _, existing := range s.names {
		if strings.ToLower(existing) == folded {
			return "", ErrNameTaken
		}
	}

	s.names[sessionID] = name
	return name, nil
}

// Leave removes the session from the roster and reports the name it held.
// Idempotent: a second call for the same id is a no-op returning false.
func (s *Service) Leave(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.names[sessionID]
	if !ok {
		return "", false
	}
	delete(s.names, sessionID)
	return name, true
}

// RecordMessage validates and appends a chat message to the bounded history,
// returning the event to broadcast. The timestamp is assigned here, not by
// the client.
func (s *Service) RecordMessage(sessionID, rawText string) (room.Event, error) {
	text := strings.TrimSpace(rawText)

	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.names[sessionID]
	if !ok {
		return room.Event{}, ErrNotJoined
	}
	if text == "" {
		return room.Event{}, ErrEmptyMessage
	}

	event := room.NewMessageEvent(sessionID, name, text)
	s.history = append(s.history, event)
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
	return event, nil
}

// RosterSnapshot builds a user_list event over all currently joined sessions.
// Members are sorted case-insensitively by name so every snapshot of the same
// member set is identical.
func (s *Service) RosterSnapshot() room.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := lo.Keys(s.names)
	sort.Slice(ids, func(i, j int) bool {
		return strings.ToLower(s.names[ids[i]]) < strings.ToLower(s.names[ids[j]])
	})

	members := lo.Map(ids, func(id string, _ int) room.Member {
		return room.Member{ID: id, Username: s.names[id]}
	})
	return room.NewRosterEvent(members)
}

// HistorySnapshot returns a copy of the retained messages, oldest first.
func (s *Service) HistorySnapshot() []room.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]room.Event, len(s.history))
	copy(copied, s.history)
	return copied
}

// ConnectedUserCount reports how many sessions currently hold a name.
func (s *Service) ConnectedUserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.names)
}
