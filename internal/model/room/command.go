package room

import "encoding/json"

// Command is a decoded client request. Exactly one of the concrete types
// below is produced per inbound frame; unrecognized types are preserved as
// UnknownCommand so the caller can report them without guessing at shape.
type Command interface {
	command()
}

// JoinCommand asks to bind a display name to the session.
type JoinCommand struct {
	Username string
}

// PostCommand carries a chat message from a joined session.
type PostCommand struct {
	Content string
}

// UnknownCommand records an inbound frame with an unsupported type tag.
type UnknownCommand struct {
	Type string
}

func (JoinCommand) command()    {}
func (PostCommand) command()    {}
func (UnknownCommand) command() {}

type inboundFrame struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Content  string `json:"content"`
}

// DecodeCommand parses one inbound frame. A non-nil error means the payload
// was not a JSON object at all; a syntactically valid frame with an
// unsupported type decodes to UnknownCommand instead.
func DecodeCommand(data []byte) (Command, error) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, err
	}

	switch frame.Type {
	case "join":
		return JoinCommand{Username: frame.Username}, nil
	case "message":
		return PostCommand{Content: frame.Content}, nil
	default:
		return UnknownCommand{Type: frame.Type}, nil
	}
}
