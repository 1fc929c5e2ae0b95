package reasoning

// StepKind classifies one reasoning step.
type StepKind string

const (
	KindCalculation StepKind = "calculation"
	KindConclusion  StepKind = "conclusion"
	KindAssumption  StepKind = "assumption"
	KindAnalysis    StepKind = "analysis"
	KindReasoning   StepKind = "reasoning"
)

// StepKinds returns all kinds in classification priority order, with the
// default kind last.
func StepKinds() []StepKind {
	return []StepKind{KindCalculation, KindConclusion, KindAssumption, KindAnalysis, KindReasoning}
}

// Step is one segmented, classified unit of reasoning text.
// The JSON field names are relied on by renderers and exports.
type Step struct {
	Ordinal int      `json:"ordinal"`
	Content string   `json:"content"`
	Kind    StepKind `json:"kind"`
}

// Outcome records which segmentation path produced a Transcript.
type Outcome string

const (
	// OutcomeMarkers means line segmentation on step markers succeeded.
	OutcomeMarkers Outcome = "markers"
	// OutcomeSentences means the text had no markers and was split into sentences.
	OutcomeSentences Outcome = "sentences"
	// OutcomeLines means the text had no markers and no sentence long
	// enough, so each non-empty line became a step.
	OutcomeLines Outcome = "lines"
	// OutcomeWhole means neither pass produced steps; the trimmed input is one step.
	OutcomeWhole Outcome = "whole"
	// OutcomeRecovered means segmentation failed and the whole input was
	// substituted as a single step. Transcript.Failure holds the reason.
	OutcomeRecovered Outcome = "recovered"
	// OutcomeEmpty means the input was empty or whitespace only.
	OutcomeEmpty Outcome = "empty"
)

// Transcript is the ordered sequence of steps produced from one raw text.
type Transcript struct {
	Steps   []Step  `json:"steps"`
	Outcome Outcome `json:"outcome"`
	Failure string  `json:"failure,omitempty"`
}

// Len returns the number of steps.
func (t *Transcript) Len() int {
	return len(t.Steps)
}
