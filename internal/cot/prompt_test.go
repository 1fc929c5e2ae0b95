package cot

import (
	"strings"
	"testing"

	"github.com/abhisek/thoughtchain/internal/reasoning"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		category reasoning.Category
		prefix   string
		suffix   string
	}{
		{reasoning.CategoryGeneral, "Let's think step by step.", "Solution:"},
		{reasoning.CategoryMath, "Let's solve this math problem step by step.", "Step-by-step solution:"},
		{reasoning.CategoryLogic, "Let's analyze this logic problem step by step.", "Reasoning:"},
		{reasoning.CategoryRiddle, "Let's think through this riddle step by step.", "Step-by-step thinking:"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := BuildPrompt(tt.category, "  What is 2+2?  ")
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("prompt %q does not start with %q", got, tt.prefix)
			}
			if !strings.HasSuffix(got, tt.suffix) {
				t.Errorf("prompt %q does not end with %q", got, tt.suffix)
			}
			if !strings.Contains(got, ": What is 2+2?\n") {
				t.Errorf("prompt %q does not contain the trimmed problem", got)
			}
			if strings.Contains(got, problemPlaceholder) {
				t.Errorf("prompt %q still has a placeholder", got)
			}
		})
	}
}

func TestBuildPrompt_RiddleLabel(t *testing.T) {
	got := BuildPrompt(reasoning.CategoryRiddle, "What has keys but no locks?")
	if !strings.Contains(got, "Riddle: What has keys but no locks?") {
		t.Fatalf("unexpected riddle prompt: %q", got)
	}
}

func TestTemplates_FallBackToGeneral(t *testing.T) {
	tmpl := Templates{reasoning.CategoryGeneral: "Q: {problem}\nA:"}

	if got := tmpl.Build(reasoning.CategoryMath, "1+1"); got != "Q: 1+1\nA:" {
		t.Fatalf("expected general template, got %q", got)
	}

	empty := Templates{}
	if got := empty.Build(reasoning.CategoryLogic, "x"); !strings.HasPrefix(got, "Let's think step by step.") {
		t.Fatalf("expected built-in general template, got %q", got)
	}
}
