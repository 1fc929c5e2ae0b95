package cot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/thoughtchain/internal/llm"
	"github.com/abhisek/thoughtchain/internal/reasoning"
)

// BenchRun is the outcome of one benchmark iteration.
type BenchRun struct {
	Iteration int           `json:"iteration"`
	Latency   time.Duration `json:"latency"`
	Steps     int           `json:"steps"`
	Tokens    int           `json:"output_tokens"`
	Err       string        `json:"error,omitempty"`
}

// BenchResult aggregates repeated solves of the same problem. Min, Avg
// and Max cover successful iterations only.
type BenchResult struct {
	Problem  string             `json:"problem"`
	Category reasoning.Category `json:"category"`
	Runs     []BenchRun         `json:"runs"`
	Failures int                `json:"failures"`
	Min      time.Duration      `json:"min"`
	Avg      time.Duration      `json:"avg"`
	Max      time.Duration      `json:"max"`
}

// Bench solves in.Problem n times and reports per-iteration latency.
// Iterations that fail are recorded and do not stop the benchmark.
// Benchmark runs are not saved.
func (s *Service) Bench(ctx context.Context, in SolveInput, n int) (*BenchResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("bench needs at least one run, got %d", n)
	}

	result := &BenchResult{
		Problem:  in.Problem,
		Category: in.Category,
	}
	if result.Category == "" {
		result.Category = s.classifier.Classify(in.Problem)
	}
	in.Category = result.Category

	ctx = llm.WithPurpose(ctx, PurposeBench)

	var total time.Duration
	succeeded := 0

	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		run, err := s.solve(ctx, in)
		elapsed := time.Since(start)

		br := BenchRun{Iteration: i, Latency: elapsed}
		if err != nil {
			if errors.Is(err, ErrEmptyProblem) || errors.Is(err, ErrInvalidInput) {
				return nil, err
			}
			br.Err = err.Error()
			result.Failures++
		} else {
			br.Steps = run.Transcript.Len()
			br.Tokens = run.OutputTokens

			total += elapsed
			succeeded++
			if result.Min == 0 || elapsed < result.Min {
				result.Min = elapsed
			}
			if elapsed > result.Max {
				result.Max = elapsed
			}
		}
		result.Runs = append(result.Runs, br)
	}

	if succeeded > 0 {
		result.Avg = total / time.Duration(succeeded)
	}

	return result, nil
}
