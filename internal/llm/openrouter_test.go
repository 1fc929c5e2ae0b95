package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  OpenRouterConfig
	}{
		{"empty API key", OpenRouterConfig{Model: "microsoft/phi-3-mini-128k-instruct"}},
		{"empty model", OpenRouterConfig{APIKey: "sk-or-test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOpenRouterProvider(tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOpenRouterProvider_SendsModelAndAttribution(t *testing.T) {
	var (
		gotModel   string
		gotReferer string
		gotTitle   string
		gotAuth    string
		gotPath    string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "gen-1",
			"model": "microsoft/phi-3-mini-128k-instruct",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "Step 1: think."},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "microsoft/phi-3-mini-128k-instruct",
		BaseURL: server.URL + "/api/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "microsoft/phi-3-mini-128k-instruct" {
		t.Fatalf("model = %q, want the vendor-qualified ID unchanged", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "What is 2+3?"}},
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Step 1: think." {
		t.Errorf("content = %q", resp.Content)
	}
	if gotPath != "/api/v1/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotModel != "microsoft/phi-3-mini-128k-instruct" {
		t.Errorf("model sent = %q", gotModel)
	}
	if gotReferer != openRouterReferer || gotTitle != openRouterTitle {
		t.Errorf("attribution headers = %q, %q", gotReferer, gotTitle)
	}
	if gotAuth != "Bearer sk-or-test" {
		t.Errorf("authorization = %q", gotAuth)
	}
}
