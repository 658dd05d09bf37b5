package assist

import (
	"context"
	"strings"
	"sync"
)

// DefaultHistoryLimit caps the remembered turns of a conversation.
const DefaultHistoryLimit = 20

// Conversation keeps a bounded chat history in front of a Responder.
// It is safe for concurrent use, but turns are answered one at a time.
type Conversation struct {
	responder Responder
	limit     int

	mu      sync.Mutex
	history []Message
}

// NewConversation creates an empty conversation. A non-positive limit
// means DefaultHistoryLimit.
func NewConversation(r Responder, limit int) *Conversation {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Conversation{responder: r, limit: limit}
}

// Ask sends question with the prior turns and records both sides.
// A failed turn is not recorded.
func (c *Conversation) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	prior := append([]Message(nil), c.history...)
	answer, err := c.responder.Respond(ctx, prior, question)
	if err != nil {
		return "", err
	}

	c.history = append(c.history,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer},
	)
	if over := len(c.history) - c.limit; over > 0 {
		c.history = append([]Message(nil), c.history[over:]...)
	}
	return answer, nil
}

// History returns a copy of the remembered turns, oldest first.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}

// Reset forgets the conversation.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}
