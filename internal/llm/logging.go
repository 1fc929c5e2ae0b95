package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/thoughtchain/internal/store"
)

// LoggingProvider records every call as an LLM event and a log line.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *slog.Logger
}

// WithLogging wraps p with event logging. A nil repo disables persistence;
// calls are still logged at debug level.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: providerName, events: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(PurposeFrom(ctx), req, resp, err, time.Since(start))

	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, "llm call",
		slog.String("provider", ev.Provider),
		slog.String("model", ev.Model),
		slog.String("purpose", ev.Purpose),
		slog.Int64("latency_ms", ev.LatencyMs),
		slog.Int("input_tokens", ev.InputTokens),
		slog.Int("output_tokens", ev.OutputTokens),
		slog.String("error", ev.ErrorMessage),
	)

	if l.events != nil {
		// A cancelled request is still worth recording.
		if aerr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); aerr != nil {
			l.logger.Warn("record llm event", "error", aerr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Content
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// transcript renders a request as role-tagged blocks for `llm view`.
func transcript(req Request) string {
	var b strings.Builder
	block := func(role, text string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", role, text)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	fmt.Fprintf(&b, "[max_tokens=%d temperature=%.2f]\n", req.MaxTokens, req.Temperature)
	return b.String()
}
