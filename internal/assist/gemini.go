package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/litescript/ls-constellation/internal/portfolio"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenAIGenerator calls the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini client. An empty apiKey yields
// ErrNoGenerator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoGenerator
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

// Generate implements Generator.
func (g *GenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

// Model returns the model name.
func (g *GenAIGenerator) Model() string { return g.model }

// Gemini answers with a generative model primed with the portfolio.
type Gemini struct {
	gen     Generator
	content *portfolio.Content
	timeout time.Duration
}

// NewGemini wraps gen. A zero timeout means no per-call deadline.
func NewGemini(gen Generator, content *portfolio.Content, timeout time.Duration) *Gemini {
	return &Gemini{gen: gen, content: content, timeout: timeout}
}

// Respond implements Responder.
func (g *Gemini) Respond(ctx context.Context, history []Message, question string) (string, error) {
	if g.gen == nil {
		return "", ErrNoGenerator
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(g.content.SystemPrompt(), g.content.Context(), history, question)
	answer, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
