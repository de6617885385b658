package room_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	model "chatroom/internal/model/room"
	roomservice "chatroom/internal/service/room"
)

func TestJoinTrimsName(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	name, err := svc.Join("s1", "  alice  ")
	req.NoError(err)
	req.Equal("alice", name)
	req.Equal(1, svc.ConnectedUserCount())
}

func TestJoinEmptyNameRejected(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "   ")
	req.ErrorIs(err, roomservice.ErrInvalidName)
	req.Equal(0, svc.ConnectedUserCount())
}

func TestJoinNameCollisionIsCaseInsensitive(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "alice")
	req.NoError(err)

	_, err = svc.Join("s2", "Alice")
	req.ErrorIs(err, roomservice.ErrNameTaken)

	// The rejected join must leave the registry untouched.
	req.Equal(1, svc.ConnectedUserCount())
	req.Empty(svc.HistorySnapshot())
}

func TestJoinTwiceSameSessionRejected(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "alice")
	req.NoError(err)

	_, err = svc.Join("s1", "bob")
	req.ErrorIs(err, roomservice.ErrAlreadyJoined)

	roster := decodeRoster(t, svc.RosterSnapshot())
	req.Len(roster, 1)
	req.Equal("alice", roster[0].Username)
}

func TestLeaveIsIdempotent(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "alice")
	req.NoError(err)

	name, ok := svc.Leave("s1")
	req.True(ok)
	req.Equal("alice", name)

	_, ok = svc.Leave("s1")
	req.False(ok)
	req.Equal(0, svc.ConnectedUserCount())
}

func TestLeaveUnjoinedSession(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, ok := svc.Leave("never-joined")
	req.False(ok)
}

func TestRecordMessageRequiresJoin(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.RecordMessage("s1", "hi")
	req.ErrorIs(err, roomservice.ErrNotJoined)
	req.Empty(svc.HistorySnapshot())
}

func TestRecordMessageRejectsEmptyText(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "alice")
	req.NoError(err)

	_, err = svc.RecordMessage("s1", "   ")
	req.ErrorIs(err, roomservice.ErrEmptyMessage)
	req.Empty(svc.HistorySnapshot())
}

func TestRecordMessageAppendsToHistory(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "alice")
	req.NoError(err)

	event, err := svc.RecordMessage("s1", "hi")
	req.NoError(err)
	req.Equal(model.EventMessage, event.Type)
	req.Equal("alice", event.Username)
	req.Equal("hi", event.Content)
	req.Equal("s1", event.UserID)
	req.NotZero(event.Timestamp)
	req.NotEmpty(event.ID)

	history := svc.HistorySnapshot()
	req.Len(history, 1)
	req.Equal(event, history[0])
}

func TestHistoryEvictsOldestBeyondLimit(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(100)

	_, err := svc.Join("s1", "alice")
	req.NoError(err)

	for i := 1; i <= 101; i++ {
		_, err := svc.RecordMessage("s1", fmt.Sprintf("msg %d", i))
		req.NoError(err)
	}

	history := svc.HistorySnapshot()
	req.Len(history, 100)
	req.Equal("msg 2", history[0].Content)
	req.Equal("msg 101", history[99].Content)
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "alice")
	req.NoError(err)
	_, err = svc.RecordMessage("s1", "first")
	req.NoError(err)

	snapshot := svc.HistorySnapshot()
	_, err = svc.RecordMessage("s1", "second")
	req.NoError(err)

	req.Len(snapshot, 1)
	req.Equal("first", snapshot[0].Content)
}

func TestRosterSnapshotSortedByName(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	_, err := svc.Join("s1", "carol")
	req.NoError(err)
	_, err = svc.Join("s2", "Bob")
	req.NoError(err)
	_, err = svc.Join("s3", "alice")
	req.NoError(err)

	event := svc.RosterSnapshot()
	req.Equal(model.EventUserList, event.Type)
	req.Equal(model.SystemUsername, event.Username)

	roster := decodeRoster(t, event)
	req.Len(roster, 3)
	req.Equal("alice", roster[0].Username)
	req.Equal("Bob", roster[1].Username)
	req.Equal("carol", roster[2].Username)
	req.Equal("s3", roster[0].ID)
}

func TestRosterSnapshotEmptyRoom(t *testing.T) {
	req := require.New(t)
	svc := roomservice.NewService(0)

	roster := decodeRoster(t, svc.RosterSnapshot())
	req.Empty(roster)
}

func decodeRoster(t *testing.T, event model.Event) []model.Member {
	t.Helper()
	var members []model.Member
	if err := json.Unmarshal([]byte(event.Content), &members); err != nil {
		t.Fatalf("decode roster content: %v", err)
	}
	return members
}
