package llm

import (
	"context"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive free-form text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its completion.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Chain-of-thought prompts are
	// single-turn, so this usually holds one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the generated text, never empty on success.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped: StopEnd or StopMaxTokens.
	// A truncated completion is still returned; chain-of-thought text is
	// usable even when cut short.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// completion is the part of an SDK reply every provider extracts.
type completion struct {
	text  string
	stop  string
	model string
	usage Usage
}

// response validates c and builds the Response. Empty text is an
// ErrMaxTokensExceeded when the budget ran out first, else ErrInvalidResponse.
func (c completion) response() (*Response, error) {
	text := strings.TrimSpace(c.text)
	if text == "" {
		if c.stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{}
		}
		return nil, &ErrInvalidResponse{Err: errEmptyCompletion}
	}

	usage := c.usage
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    text,
		Usage:      usage,
		Model:      c.model,
		StopReason: c.stop,
	}, nil
}
