package cot

import (
	"time"

	"github.com/abhisek/thoughtchain/internal/llm"
	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/store"
)

// Run is one solved problem: the prompt, the raw model answer and the
// segmented steps.
type Run struct {
	ID           string               `json:"id"`
	CreatedAt    time.Time            `json:"created_at"`
	Problem      string               `json:"problem"`
	Category     reasoning.Category   `json:"category"`
	Prompt       string               `json:"prompt"`
	Raw          string               `json:"raw_response"`
	Transcript   reasoning.Transcript `json:"transcript"`
	Model        string               `json:"model"`
	StopReason   string               `json:"stop_reason,omitempty"`
	InputTokens  int                  `json:"input_tokens"`
	OutputTokens int                  `json:"output_tokens"`
	Latency      time.Duration        `json:"latency"`

	// stepCount is the persisted count for runs listed without steps.
	stepCount int
}

// Steps returns the segmented steps.
func (r *Run) Steps() []reasoning.Step {
	return r.Transcript.Steps
}

// StepCount returns the number of steps, including for listed runs
// whose steps were not loaded.
func (r *Run) StepCount() int {
	if n := len(r.Transcript.Steps); n > 0 {
		return n
	}
	return r.stepCount
}

// Summary summarizes the run's steps.
func (r *Run) Summary() reasoning.Summary {
	return reasoning.Summarize(r.Transcript.Steps)
}

// Truncated reports whether generation stopped at the token budget.
func (r *Run) Truncated() bool {
	return r.StopReason == llm.StopMaxTokens
}

// ToRecord converts the run to its persisted form.
func (r *Run) ToRecord() *store.RunRecord {
	rec := &store.RunRecord{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Problem:      r.Problem,
		Category:     string(r.Category),
		Prompt:       r.Prompt,
		RawResponse:  r.Raw,
		Outcome:      string(r.Transcript.Outcome),
		Failure:      r.Transcript.Failure,
		Model:        r.Model,
		InputTokens:  r.InputTokens,
		OutputTokens: r.OutputTokens,
		LatencyMs:    r.Latency.Milliseconds(),
		Steps:        make([]store.StepRecord, len(r.Transcript.Steps)),
	}
	for i, s := range r.Transcript.Steps {
		rec.Steps[i] = store.StepRecord{
			Ordinal: s.Ordinal,
			Content: s.Content,
			Kind:    string(s.Kind),
		}
	}
	return rec
}

// RunFromRecord rebuilds a Run from its persisted form. Records loaded
// without steps produce a Run with an empty transcript.
func RunFromRecord(rec *store.RunRecord) *Run {
	r := &Run{
		ID:           rec.ID,
		CreatedAt:    rec.CreatedAt,
		Problem:      rec.Problem,
		Category:     reasoning.Category(rec.Category),
		Prompt:       rec.Prompt,
		Raw:          rec.RawResponse,
		Model:        rec.Model,
		InputTokens:  rec.InputTokens,
		OutputTokens: rec.OutputTokens,
		Latency:      time.Duration(rec.LatencyMs) * time.Millisecond,
		stepCount:    rec.StepCount,
		Transcript: reasoning.Transcript{
			Steps:   make([]reasoning.Step, len(rec.Steps)),
			Outcome: reasoning.Outcome(rec.Outcome),
			Failure: rec.Failure,
		},
	}
	for i, s := range rec.Steps {
		r.Transcript.Steps[i] = reasoning.Step{
			Ordinal: s.Ordinal,
			Content: s.Content,
			Kind:    reasoning.StepKind(s.Kind),
		}
	}
	return r
}
