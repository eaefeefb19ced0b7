package core

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind distinguishes the two directions of role communication.
type MessageKind string

const (
	// KindRequest marks a message asking a role to act.
	KindRequest MessageKind = "request"
	// KindResponse marks a role's answer to a prior request.
	KindResponse MessageKind = "response"
)

// Message is one unit of communication between roles. After it has been
// appended to a State's log it must be treated as immutable; the log is
// append-only and insertion order is the sole source of truth for "most
// recent message from X".
//
// Iteration records the orchestration cycle the message belongs to. A
// response carries the iteration of the request it answers, which keeps
// request/response pairs aligned when the coordinator audits a cycle.
type Message struct {
	ID        string      `json:"id"`
	From      Role        `json:"from_role"`
	To        Role        `json:"to_role"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"kind"`
	Iteration int         `json:"iteration"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewRequest constructs a request message from one role to another bound to
// the given orchestration cycle.
func NewRequest(from, to Role, content string, iteration int) Message {
	return newMessage(from, to, content, KindRequest, iteration)
}

// NewResponse constructs a response message. By convention responses are
// addressed to the coordinator and stamped with the iteration of the request
// they answer.
func NewResponse(from, to Role, content string, iteration int) Message {
	return newMessage(from, to, content, KindResponse, iteration)
}

func newMessage(from, to Role, content string, kind MessageKind, iteration int) Message {
	return Message{
		ID:        NewID(),
		From:      from,
		To:        to,
		Content:   content,
		Kind:      kind,
		Iteration: iteration,
		Timestamp: time.Now().UTC(),
	}
}

// AddressedTo reports whether the message targets the given role, either
// directly or via broadcast.
func (m Message) AddressedTo(r Role) bool {
	return m.To == r || m.To == RoleBroadcast
}

// NewID generates a unique identifier for messages and runs.
func NewID() string { return uuid.NewString() }
