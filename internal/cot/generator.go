package cot

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/thoughtchain/internal/llm"
	"github.com/abhisek/thoughtchain/internal/reasoning"
)

// GenerateInput is what a Generator needs to produce reasoning text.
type GenerateInput struct {
	Category    reasoning.Category
	Problem     string
	MaxTokens   int
	Temperature float64
}

// Generation is raw reasoning text returned by a Generator.
type Generation struct {
	Prompt     string
	Text       string
	Model      string
	Usage      llm.Usage
	StopReason string
	Latency    time.Duration
}

// Generator produces step-by-step reasoning text for a problem.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*Generation, error)
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider  llm.Provider
	templates Templates
}

// NewLLMGenerator creates an LLMGenerator. Nil templates use the defaults.
func NewLLMGenerator(provider llm.Provider, templates Templates) *LLMGenerator {
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &LLMGenerator{provider: provider, templates: templates}
}

// Generate prompts the provider with the category template for input.
// The purpose label already on ctx is kept; otherwise "cot" is used.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Generation, error) {
	if llm.PurposeFrom(ctx) == llm.PurposeUnknown {
		ctx = llm.WithPurpose(ctx, PurposeSolve)
	}

	prompt := g.templates.Build(input.Category, input.Problem)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   input.MaxTokens,
		Temperature: input.Temperature,
	}

	start := time.Now()
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return &Generation{
		Prompt:     prompt,
		Text:       resp.Content,
		Model:      resp.Model,
		Usage:      resp.Usage,
		StopReason: resp.StopReason,
		Latency:    time.Since(start),
	}, nil
}
