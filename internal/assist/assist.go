// Package assist answers visitor questions about the portfolio, through
// Gemini when configured and a keyword responder otherwise.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/litescript/ls-constellation/internal/logging"
)

// ErrNoGenerator is returned when a remote responder has no backing model,
// typically because no API key is configured.
var ErrNoGenerator = errors.New("no generator configured")

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Responder answers question given the earlier turns of a conversation.
type Responder interface {
	Respond(ctx context.Context, history []Message, question string) (string, error)
}

// Fallback tries Primary and answers locally when it fails or comes back
// empty. Its Respond never returns an error.
type Fallback struct {
	Primary Responder
	Local   *Local
	Log     *logging.Logger
}

// Respond implements Responder.
func (f *Fallback) Respond(ctx context.Context, history []Message, question string) (string, error) {
	if f.Primary != nil {
		answer, err := f.Primary.Respond(ctx, history, question)
		switch {
		case err != nil:
			if f.Log != nil {
				f.Log.Warn("assist: remote model unavailable, using local fallback: %v", err)
			}
		case strings.TrimSpace(answer) != "":
			return answer, nil
		}
	}
	return f.Local.Answer(question), nil
}

// BuildPrompt assembles a single-turn prompt from the persona, portfolio
// brief, prior conversation and the new question.
func BuildPrompt(system, brief string, history []Message, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nPortfolio Information:\n%s\n\n", system, brief)
	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, m := range history {
			speaker := "Assistant"
			if m.Role == RoleUser {
				speaker = "User"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, m.Content)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User: %s\n\nAssistant:", question)
	return b.String()
}
