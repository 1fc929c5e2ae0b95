package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/thoughtchain/internal/store"
)

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_CancelsSlowProvider(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got: %v", err)
	}
	if p.ModelID() != "blocking" {
		t.Fatalf("expected 'blocking', got %q", p.ModelID())
	}
}

func TestTimeout_ZeroIsPassThrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("expected the provider to be returned unchanged")
	}
}

// recordingEventRepo captures appended LLM events. Other methods are unused.
type recordingEventRepo struct {
	store.EventRepo

	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{
		Content: "Step 1: add.\nTherefore the answer is 4.",
		Usage:   Usage{InputTokens: 7, OutputTokens: 11, TotalTokens: 18},
	})
	p := WithLogging(mock, ProviderOllama, repo, nil)

	ctx := WithPurpose(context.Background(), "solve")
	_, err := p.Generate(ctx, Request{
		System:    "sys prompt",
		Messages:  []Message{{Role: RoleUser, Content: "Problem: 2+2"}},
		MaxTokens: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Provider != ProviderOllama || ev.Model != "mock" || ev.Purpose != "solve" {
		t.Fatalf("unexpected event identity: %+v", ev)
	}
	if !ev.Success || ev.ErrorMessage != "" {
		t.Fatalf("expected success, got %+v", ev)
	}
	if ev.InputTokens != 7 || ev.OutputTokens != 11 {
		t.Fatalf("unexpected tokens: in=%d out=%d", ev.InputTokens, ev.OutputTokens)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nsys prompt") || !strings.Contains(ev.RequestBody, "[user]\nProblem: 2+2") {
		t.Fatalf("unexpected request body: %q", ev.RequestBody)
	}
	if ev.ResponseBody != "Step 1: add.\nTherefore the answer is 4." {
		t.Fatalf("unexpected response body: %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}})
	p := WithLogging(mock, ProviderOllama, repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Success {
		t.Fatal("expected failure to be recorded")
	}
	if !strings.Contains(ev.ErrorMessage, "connection refused") {
		t.Fatalf("unexpected error message: %q", ev.ErrorMessage)
	}
	if ev.Purpose != "unknown" {
		t.Fatalf("expected purpose 'unknown', got %q", ev.Purpose)
	}
}

func TestLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: "ok"})
	p := WithLogging(mock, ProviderOllama, repo, nil)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "ok"})
	p := WithLogging(mock, ProviderOllama, nil, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddlewareChain_RetriesAreEachLogged(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: "Therefore the answer is 4."},
	)
	p := WithTimeout(WithRetry(WithLogging(mock, ProviderOllama, repo, nil), retryConfig()), time.Second)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Therefore the answer is 4." {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
	if len(repo.events) != 2 {
		t.Fatalf("expected 2 logged attempts, got %d", len(repo.events))
	}
	if repo.events[0].Success || !repo.events[1].Success {
		t.Fatalf("unexpected success flags: %v, %v", repo.events[0].Success, repo.events[1].Success)
	}
}
