package room

// session is one connected client. The username is empty until the client
// joins; it is written and read only under the hub mutex. The send channel is
// the session's outbound queue, drained by a single writer owned by the
// transport layer, so frames enqueued in order arrive in order.
type session struct {
	id       string
	username string
	send     chan []byte
}

func newSession(id string, buffer int) *session {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &session{
		id:   id,
		send: make(chan []byte, buffer),
	}
}

func (s *session) joined() bool {
	return s.username != ""
}

// enqueue offers a frame to the session's outbound queue without blocking.
// A full queue means the client is too slow to keep up; the frame is dropped
// for this session only.
func (s *session) enqueue(frame []byte) bool {
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}
