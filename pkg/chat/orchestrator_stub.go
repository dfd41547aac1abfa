package chat

import (
	"context"
	"sync"
)

type OrchestratorStub struct {
	mu        sync.Mutex
	reply     string
	err       error
	histories [][]Message
}

func NewOrchestratorStub(reply string) *OrchestratorStub {
	return &OrchestratorStub{reply: reply}
}

func (o *OrchestratorStub) Ask(ctx context.Context, message string, history []Message) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.histories = append(o.histories, append([]Message(nil), history...))
	if o.err != nil {
		return "", o.err
	}
	return o.reply, nil
}

func (o *OrchestratorStub) SetReply(reply string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reply = reply
}

func (o *OrchestratorStub) SetError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

// LastHistory returns the history passed to the most recent Ask call.
func (o *OrchestratorStub) LastHistory() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.histories) == 0 {
		return nil
	}
	return o.histories[len(o.histories)-1]
}
