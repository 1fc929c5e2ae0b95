package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	api "github.com/ollama/ollama/api"
)

const defaultOllamaHost = "http://localhost:11434"

// OllamaProvider implements Provider against a local Ollama server.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates a provider for the Ollama server at cfg.Host.
// A zero timeout leaves the HTTP client without a deadline.
func NewOllamaProvider(cfg OllamaConfig, timeout time.Duration) (*OllamaProvider, error) {
	host := cfg.Host
	if host == "" {
		host = defaultOllamaHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL %q: %w", cfg.Host, err)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	httpClient := &http.Client{Timeout: timeout}

	return &OllamaProvider{
		client: api.NewClient(base, httpClient),
		model:  cfg.Model,
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model:    p.model,
		Stream:   &stream,
		Messages: buildOllamaMessages(req),
		Options:  map[string]any{},
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		chatReq.Options["temperature"] = req.Temperature
	}

	var (
		text  strings.Builder
		final api.ChatResponse
	)
	err := p.client.Chat(ctx, chatReq, func(cr api.ChatResponse) error {
		text.WriteString(cr.Message.Content)
		if cr.Done {
			final = cr
		}
		return nil
	})
	if err != nil {
		return nil, mapOllamaError(err)
	}

	model := final.Model
	if model == "" {
		model = p.model
	}
	return completion{
		text:  text.String(),
		stop:  mapOllamaStopReason(final.DoneReason),
		model: model,
		usage: Usage{
			InputTokens:  final.PromptEvalCount,
			OutputTokens: final.EvalCount,
		},
	}.response()
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

func buildOllamaMessages(req Request) []api.Message {
	var out []api.Message
	if req.System != "" {
		out = append(out, api.Message{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		out = append(out, api.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func mapOllamaStopReason(reason string) string {
	if reason == "length" {
		return StopMaxTokens
	}
	return StopEnd
}

func mapOllamaError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return statusError(statusErr.StatusCode, 0, err)
	}
	return statusError(0, 0, err)
}
