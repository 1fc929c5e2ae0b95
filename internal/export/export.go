// Package export writes solved runs as JSON, Markdown or PDF documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/reasoning"
)

// Format is an export document format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat converts user input into a Format. "md" is accepted for
// Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, markdown or pdf)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer export format from %q", path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatPDF:
		return ".pdf"
	}
	return ".json"
}

// Document is the stable exported form of a run.
type Document struct {
	ID           string           `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	Problem      string           `json:"problem"`
	Category     string           `json:"category"`
	Model        string           `json:"model"`
	LatencyMs    int64            `json:"latency_ms"`
	InputTokens  int              `json:"input_tokens"`
	OutputTokens int              `json:"output_tokens"`
	Outcome      string           `json:"outcome"`
	Failure      string           `json:"failure,omitempty"`
	Steps        []reasoning.Step `json:"steps"`
	Summary      DocumentSummary  `json:"summary"`
	RawResponse  string           `json:"raw_response"`
}

// DocumentSummary holds step counts per kind and the final answer.
type DocumentSummary struct {
	Total       int            `json:"total"`
	Counts      map[string]int `json:"counts"`
	FinalAnswer string         `json:"final_answer,omitempty"`
}

// NewDocument builds the exported form of run.
func NewDocument(run *cot.Run) Document {
	steps := run.Steps()
	if steps == nil {
		steps = []reasoning.Step{}
	}
	sum := reasoning.Summarize(steps)
	counts := make(map[string]int, len(sum.Counts))
	for _, kc := range sum.Counts {
		counts[string(kc.Kind)] = kc.Count
	}

	return Document{
		ID:           run.ID,
		CreatedAt:    run.CreatedAt,
		Problem:      run.Problem,
		Category:     string(run.Category),
		Model:        run.Model,
		LatencyMs:    run.Latency.Milliseconds(),
		InputTokens:  run.InputTokens,
		OutputTokens: run.OutputTokens,
		Outcome:      string(run.Transcript.Outcome),
		Failure:      run.Transcript.Failure,
		Steps:        steps,
		Summary: DocumentSummary{
			Total:       sum.Total,
			Counts:      counts,
			FinalAnswer: sum.FinalAnswer,
		},
		RawResponse: run.Raw,
	}
}

// Write exports run to w in the given format.
func Write(w io.Writer, run *cot.Run, f Format) error {
	switch f {
	case FormatJSON:
		return JSON(w, run)
	case FormatMarkdown:
		return Markdown(w, run)
	case FormatPDF:
		return PDF(w, run, DefaultPDFConfig())
	}
	return fmt.Errorf("unknown export format %q", f)
}

// JSON writes run as an indented JSON Document.
func JSON(w io.Writer, run *cot.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(run)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
