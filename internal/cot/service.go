package cot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/thoughtchain/internal/llm"
	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/store"
)

// Purpose labels attached to generation calls.
const (
	PurposeSolve = "cot"
	PurposeBench = "bench"
)

var (
	// ErrEmptyProblem is returned when the problem text is blank.
	ErrEmptyProblem = errors.New("problem is empty")

	// ErrInvalidInput is wrapped by errors for out-of-range generation
	// parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeneration is wrapped by every failed generation call, alongside
	// the provider error.
	ErrGeneration = errors.New("LLM generation failed")

	// ErrNoHistory is returned by history lookups when the service has
	// no run repository.
	ErrNoHistory = errors.New("run history is not enabled")
)

// SolveInput is a single problem to solve. Zero MaxTokens and
// Temperature fall back to the service Config.
type SolveInput struct {
	Problem     string
	MaxTokens   int
	Temperature float64

	// Category overrides classification when set.
	Category reasoning.Category
}

// Service runs the classify, generate, segment pipeline.
type Service struct {
	generator  Generator
	classifier *reasoning.Classifier
	segmenter  *reasoning.Segmenter
	runs       store.RunRepo
	config     Config
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRunRepo persists every solved run to repo.
func WithRunRepo(repo store.RunRepo) Option {
	return func(s *Service) { s.runs = repo }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClassifier replaces the default problem classifier.
func WithClassifier(c *reasoning.Classifier) Option {
	return func(s *Service) { s.classifier = c }
}

// WithSegmenter replaces the default step segmenter.
func WithSegmenter(seg *reasoning.Segmenter) Option {
	return func(s *Service) { s.segmenter = seg }
}

// NewService creates a Service around gen.
func NewService(gen Generator, cfg Config, opts ...Option) *Service {
	s := &Service{
		generator:  gen,
		classifier: reasoning.NewClassifier(reasoning.DefaultClassifierConfig()),
		segmenter:  reasoning.MustNewSegmenter(reasoning.DefaultSegmenterConfig()),
		config:     cfg,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify returns the category the service would use for problem.
func (s *Service) Classify(problem string) reasoning.Category {
	return s.classifier.Classify(problem)
}

// Segment splits raw reasoning text into steps.
func (s *Service) Segment(text string) *reasoning.Transcript {
	return s.segmenter.SegmentWithFallback(text)
}

// Solve classifies the problem, generates reasoning text and segments it.
// Generation errors are returned wrapped; no partial run is produced.
// When a run repository is configured the run is saved; a failed save is
// logged and does not fail the call.
func (s *Service) Solve(ctx context.Context, in SolveInput) (*Run, error) {
	run, err := s.solve(llm.WithPurpose(ctx, PurposeSolve), in)
	if err != nil {
		return nil, err
	}

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, run.ToRecord()); err != nil {
			s.logger.Warn("failed to save run", "run_id", run.ID, "error", err)
		}
	}
	return run, nil
}

func (s *Service) solve(ctx context.Context, in SolveInput) (*Run, error) {
	problem := strings.TrimSpace(in.Problem)
	if problem == "" {
		return nil, ErrEmptyProblem
	}

	maxTokens := in.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.config.MaxTokens
	}
	if maxTokens < MinMaxTokens || maxTokens > MaxMaxTokens {
		return nil, fmt.Errorf("%w: max tokens must be between %d and %d, got %d", ErrInvalidInput, MinMaxTokens, MaxMaxTokens, maxTokens)
	}

	temperature := in.Temperature
	if temperature == 0 {
		temperature = s.config.Temperature
	}
	if temperature < 0 || temperature > 1 {
		return nil, fmt.Errorf("%w: temperature must be between 0 and 1, got %g", ErrInvalidInput, temperature)
	}

	category := in.Category
	if category == "" {
		category = s.classifier.Classify(problem)
	}

	gen, err := s.generator.Generate(ctx, GenerateInput{
		Category:    category,
		Problem:     problem,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	transcript := s.segmenter.SegmentWithFallback(gen.Text)
	if transcript.Outcome == reasoning.OutcomeRecovered {
		s.logger.Warn("segmentation failed, using whole response", "reason", transcript.Failure)
	}

	run := &Run{
		ID:           uuid.NewString(),
		CreatedAt:    s.now().UTC(),
		Problem:      problem,
		Category:     category,
		Prompt:       gen.Prompt,
		Raw:          gen.Text,
		Transcript:   *transcript,
		Model:        gen.Model,
		StopReason:   gen.StopReason,
		InputTokens:  gen.Usage.InputTokens,
		OutputTokens: gen.Usage.OutputTokens,
		Latency:      gen.Latency,
	}

	s.logger.Debug("solved problem",
		"run_id", run.ID,
		"category", category,
		"steps", transcript.Len(),
		"outcome", transcript.Outcome,
		"latency", gen.Latency,
	)

	return run, nil
}

// Lookup loads a saved run with its steps.
func (s *Service) Lookup(ctx context.Context, id string) (*Run, error) {
	if s.runs == nil {
		return nil, ErrNoHistory
	}
	rec, err := s.runs.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	return RunFromRecord(rec), nil
}

// Recent lists saved runs newest first. Steps are not loaded.
func (s *Service) Recent(ctx context.Context, q store.RunQuery) ([]*Run, error) {
	if s.runs == nil {
		return nil, ErrNoHistory
	}
	recs, err := s.runs.ListRuns(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]*Run, len(recs))
	for i := range recs {
		out[i] = RunFromRecord(&recs[i])
	}
	return out, nil
}
