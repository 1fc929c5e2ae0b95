package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l, err := Setup("warn", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Logger() != l {
		t.Fatal("Logger should return the configured logger")
	}

	l.Info("hidden")
	l.Warn("shown", "run_id", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "run_id=abc") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := Setup("loud", &buf); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
