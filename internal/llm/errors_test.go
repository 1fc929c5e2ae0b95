package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestStatusError(t *testing.T) {
	cause := errors.New("boom")

	var rl *ErrRateLimit
	if err := statusError(http.StatusTooManyRequests, 3*time.Second, cause); !errors.As(err, &rl) || rl.RetryAfter != 3*time.Second {
		t.Fatalf("expected rate limit with Retry-After, got %v", err)
	}

	var auth *ErrAuthentication
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		if err := statusError(code, 0, cause); !errors.As(err, &auth) {
			t.Fatalf("%d: expected ErrAuthentication, got %T", code, err)
		}
	}

	var unavail *ErrProviderUnavailable
	for _, code := range []int{0, http.StatusBadGateway, http.StatusNotFound} {
		err := statusError(code, 0, cause)
		if !errors.As(err, &unavail) || !errors.Is(err, cause) {
			t.Fatalf("%d: expected wrapped ErrProviderUnavailable, got %v", code, err)
		}
	}

	wrapped := fmt.Errorf("post: %w", context.DeadlineExceeded)
	if err := statusError(http.StatusInternalServerError, 0, wrapped); err != wrapped {
		t.Fatalf("context errors must pass through, got %T", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"12", 12 * time.Second},
		{"0", 0},
		{"-4", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
		{"", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.value != "" {
			h.Set("Retry-After", tt.value)
		}
		if got := parseRetryAfter(h); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
	if parseRetryAfter(nil) != 0 {
		t.Error("nil header must yield zero")
	}
}

func TestErrRateLimit_Message(t *testing.T) {
	err := &ErrRateLimit{Err: errors.New("429")}
	if got := err.Error(); got != "rate limited: 429" {
		t.Fatalf("unexpected message %q", got)
	}
}
