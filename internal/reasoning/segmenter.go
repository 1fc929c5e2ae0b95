package reasoning

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// KindRule maps a step kind to its trigger substrings.
type KindRule struct {
	Kind     StepKind
	Triggers []string
}

// SegmenterConfig controls step segmentation and step-kind classification.
type SegmenterConfig struct {
	// Markers are regular expressions that signal the start of a new step.
	// They are matched case-insensitively anywhere in a line.
	Markers []string

	// Kinds is evaluated in order; the first rule with a matching trigger
	// wins. Content matching no rule is KindReasoning.
	Kinds []KindRule

	// MinStepLength is the minimum length (in characters) of a step
	// produced by the line pass.
	MinStepLength int

	// MinSentenceLength is the minimum length of a step produced by the
	// sentence fallback.
	MinSentenceLength int

	// MaxInputBytes rejects larger inputs with a SegmentError. 0 disables the limit.
	MaxInputBytes int
}

// DefaultSegmenterConfig returns the standard markers and kind families.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		Markers: []string{
			`\bstep\s*\d+\s*:`,
			`\d+\.`,
			`\d+\)`,
			`(first|second|third|fourth|fifth),`,
			`(next|then|now|finally|therefore|so|thus|hence),`,
			`(as a result|in conclusion|to summarize),`,
			`\blet me\b`,
			`\bi (need to|will|should|can)\b`,
			`\bwe (can|need to)\b`,
		},
		Kinds: []KindRule{
			{Kind: KindCalculation, Triggers: []string{
				"calculate", "multiply", "divide", "add", "subtract", "formula", "equation",
				"=", "+", "-", "*", "/",
			}},
			{Kind: KindConclusion, Triggers: []string{
				"therefore", "so", "conclude", "answer", "result", "thus", "hence",
				"finally", "in conclusion", "as a result",
			}},
			{Kind: KindAssumption, Triggers: []string{
				"assume", "given", "known", "fact", "premise", "suppose", "let", "if",
				"since", "because",
			}},
			{Kind: KindAnalysis, Triggers: []string{
				"analyze", "examine", "consider", "think", "reason", "understand",
				"identify", "determine", "find",
			}},
		},
		MinStepLength:     5,
		MinSentenceLength: 11,
		MaxInputBytes:     256 << 10,
	}
}

// SegmentError reports why a text could not be segmented.
type SegmentError struct {
	Reason string
	Err    error
}

func (e *SegmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("segment reasoning: %s: %v", e.Reason, e.Err)
	}
	return "segment reasoning: " + e.Reason
}

func (e *SegmentError) Unwrap() error { return e.Err }

var (
	// ErrInputTooLarge is wrapped by SegmentError when the input exceeds MaxInputBytes.
	ErrInputTooLarge = errors.New("input too large")
	// ErrInvalidUTF8 is wrapped by SegmentError when the input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Segmenter splits generated reasoning text into classified steps.
// A Segmenter is immutable after construction and safe for concurrent use.
type Segmenter struct {
	markers []*regexp.Regexp
	kinds   []KindRule
	cfg     SegmenterConfig
}

// NewSegmenter compiles cfg into a Segmenter.
func NewSegmenter(cfg SegmenterConfig) (*Segmenter, error) {
	if cfg.MinStepLength < 1 {
		return nil, fmt.Errorf("min step length must be positive, got %d", cfg.MinStepLength)
	}
	if cfg.MinSentenceLength < 1 {
		return nil, fmt.Errorf("min sentence length must be positive, got %d", cfg.MinSentenceLength)
	}
	if len(cfg.Kinds) == 0 {
		return nil, errors.New("at least one step kind rule is required")
	}

	markers := make([]*regexp.Regexp, 0, len(cfg.Markers))
	for _, m := range cfg.Markers {
		re, err := regexp.Compile("(?i)" + m)
		if err != nil {
			return nil, fmt.Errorf("compile marker %q: %w", m, err)
		}
		markers = append(markers, re)
	}

	kinds := make([]KindRule, len(cfg.Kinds))
	for i, k := range cfg.Kinds {
		kinds[i] = KindRule{Kind: k.Kind, Triggers: lowerAll(k.Triggers)}
	}

	return &Segmenter{markers: markers, kinds: kinds, cfg: cfg}, nil
}

// MustNewSegmenter is like NewSegmenter but panics on an invalid config.
func MustNewSegmenter(cfg SegmenterConfig) *Segmenter {
	s, err := NewSegmenter(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Segment converts text into a Transcript.
//
// Lines are grouped into steps at marker lines. Text without any marker,
// or whose steps are all too short, falls back to sentence splitting. When
// unmarked text has no sentence long enough, its line steps are kept, and
// if there are none the trimmed input becomes a single step. Empty or
// whitespace-only input yields an empty transcript.
func (s *Segmenter) Segment(text string) (*Transcript, error) {
	if s.cfg.MaxInputBytes > 0 && len(text) > s.cfg.MaxInputBytes {
		return nil, &SegmentError{
			Reason: fmt.Sprintf("%d bytes exceeds limit of %d", len(text), s.cfg.MaxInputBytes),
			Err:    ErrInputTooLarge,
		}
	}
	if !utf8.ValidString(text) {
		return nil, &SegmentError{Reason: "decode", Err: ErrInvalidUTF8}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &Transcript{Steps: []Step{}, Outcome: OutcomeEmpty}, nil
	}

	lines, sawMarker := s.segmentLines(trimmed)
	if sawMarker && len(lines) > 0 {
		return &Transcript{Steps: lines, Outcome: OutcomeMarkers}, nil
	}

	if steps := s.segmentSentences(trimmed); len(steps) > 0 {
		return &Transcript{Steps: steps, Outcome: OutcomeSentences}, nil
	}
	if len(lines) > 0 {
		return &Transcript{Steps: lines, Outcome: OutcomeLines}, nil
	}

	return &Transcript{Steps: wholeStep(trimmed), Outcome: OutcomeWhole}, nil
}

// SegmentWithFallback is Segment with failures absorbed: when Segment
// returns an error, the trimmed input is returned as a single reasoning
// step with OutcomeRecovered and the error message in Failure.
func (s *Segmenter) SegmentWithFallback(text string) *Transcript {
	t, err := s.Segment(text)
	if err == nil {
		return t
	}
	trimmed := strings.TrimSpace(strings.ToValidUTF8(text, "�"))
	steps := []Step{}
	if trimmed != "" {
		steps = wholeStep(trimmed)
	}
	return &Transcript{Steps: steps, Outcome: OutcomeRecovered, Failure: err.Error()}
}

// segmentLines runs the marker-driven line pass. It reports whether any
// line matched a marker.
func (s *Segmenter) segmentLines(text string) ([]Step, bool) {
	var (
		steps     []Step
		acc       []string
		ordinal   = 1
		sawMarker bool
	)

	flush := func() {
		if len(acc) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(acc, " "))
		acc = acc[:0]
		if utf8.RuneCountInString(content) < s.cfg.MinStepLength {
			return
		}
		steps = append(steps, Step{Ordinal: ordinal, Content: content, Kind: s.ClassifyStep(content)})
		ordinal++
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		marker := s.isMarker(line)
		if marker {
			sawMarker = true
			flush()
		}
		acc = append(acc, line)
	}
	flush()

	return steps, sawMarker
}

// segmentSentences splits text on runs of sentence terminators.
func (s *Segmenter) segmentSentences(text string) []Step {
	var steps []Step
	for _, candidate := range sentenceSplit.Split(text, -1) {
		content := whitespaceRun.ReplaceAllString(strings.TrimSpace(candidate), " ")
		if utf8.RuneCountInString(content) < s.cfg.MinSentenceLength {
			continue
		}
		steps = append(steps, Step{Ordinal: len(steps) + 1, Content: content, Kind: s.ClassifyStep(content)})
	}
	return steps
}

func (s *Segmenter) isMarker(line string) bool {
	for _, re := range s.markers {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// ClassifyStep returns the kind of a step's content.
func (s *Segmenter) ClassifyStep(content string) StepKind {
	lowered := strings.ToLower(content)
	for _, k := range s.kinds {
		if containsAny(lowered, k.Triggers) {
			return k.Kind
		}
	}
	return KindReasoning
}

func wholeStep(trimmed string) []Step {
	return []Step{{Ordinal: 1, Content: trimmed, Kind: KindReasoning}}
}
