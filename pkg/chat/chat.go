package chat

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

const (
	// FallbackReply is stored when the orchestrator fails or returns nothing.
	FallbackReply = "Sorry, I could not get a response."
	// UnreachableReply is shown, unsaved, when the reply itself cannot be stored.
	UnreachableReply = "Error: Could not reach the assistant API."
)

type Message struct {
	Id        string
	Text      string
	Sender    Sender
	Timestamp time.Time
}
