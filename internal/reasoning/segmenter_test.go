package reasoning

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	s, err := NewSegmenter(DefaultSegmenterConfig())
	if err != nil {
		t.Fatalf("new segmenter: %v", err)
	}
	return s
}

func assertSteps(t *testing.T, got []Step, want []Step) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d steps, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSegment_NumberedSteps(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("Step 1: I need to find 2+2.\nStep 2: The answer is 4.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Outcome != OutcomeMarkers {
		t.Fatalf("expected outcome %q, got %q", OutcomeMarkers, tr.Outcome)
	}
	assertSteps(t, tr.Steps, []Step{
		{Ordinal: 1, Content: "Step 1: I need to find 2+2.", Kind: KindCalculation},
		{Ordinal: 2, Content: "Step 2: The answer is 4.", Kind: KindConclusion},
	})
}

func TestSegment_SentenceFallback(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("The cat sat on the mat. It was happy. Therefore it purred.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Outcome != OutcomeSentences {
		t.Fatalf("expected outcome %q, got %q", OutcomeSentences, tr.Outcome)
	}
	assertSteps(t, tr.Steps, []Step{
		{Ordinal: 1, Content: "The cat sat on the mat", Kind: KindReasoning},
		{Ordinal: 2, Content: "It was happy", Kind: KindReasoning},
		{Ordinal: 3, Content: "Therefore it purred", Kind: KindConclusion},
	})
}

func TestSegment_SentenceFallbackDropsShortSentences(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("Yes!! The sky looks very blue today?! No.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSteps(t, tr.Steps, []Step{
		{Ordinal: 1, Content: "The sky looks very blue today", Kind: KindReasoning},
	})
}

func TestSegment_WholeInputFallback(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("  Hi  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Outcome != OutcomeWhole {
		t.Fatalf("expected outcome %q, got %q", OutcomeWhole, tr.Outcome)
	}
	assertSteps(t, tr.Steps, []Step{{Ordinal: 1, Content: "Hi", Kind: KindReasoning}})
}

func TestSegment_EmptyInput(t *testing.T) {
	s := newTestSegmenter(t)

	for _, in := range []string{"", "   ", "\n\t\n"} {
		tr, err := s.Segment(in)
		if err != nil {
			t.Fatalf("Segment(%q): unexpected error: %v", in, err)
		}
		if tr.Outcome != OutcomeEmpty {
			t.Errorf("Segment(%q) outcome = %q, want %q", in, tr.Outcome, OutcomeEmpty)
		}
		if tr.Steps == nil || len(tr.Steps) != 0 {
			t.Errorf("Segment(%q) steps = %#v, want empty non-nil slice", in, tr.Steps)
		}
	}
}

func TestSegment_ContinuationLinesAreSpaceJoined(t *testing.T) {
	s := newTestSegmenter(t)

	text := "Step 1: Look at the picture\n\n   carefully and slowly\nStep 2: Count the apples in it"
	tr, err := s.Segment(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 2 {
		t.Fatalf("expected 2 steps, got %d", tr.Len())
	}
	if tr.Steps[0].Content != "Step 1: Look at the picture carefully and slowly" {
		t.Errorf("unexpected first step: %q", tr.Steps[0].Content)
	}
}

func TestSegment_LeadingProseJoinsFirstStep(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("Here is my plan for this one\nFirst, look at the clues given\nFinally, we have the answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Here is my plan for this one",
		"First, look at the clues given",
		"Finally, we have the answer",
	}
	if tr.Len() != len(want) {
		t.Fatalf("expected %d steps, got %+v", len(want), tr.Steps)
	}
	for i, w := range want {
		if tr.Steps[i].Content != w {
			t.Errorf("step %d = %q, want %q", i+1, tr.Steps[i].Content, w)
		}
		if tr.Steps[i].Ordinal != i+1 {
			t.Errorf("step %d has ordinal %d", i+1, tr.Steps[i].Ordinal)
		}
	}
}

func TestSegment_MarkerAnywhereInLine(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("We know three facts here\nAfter that, let me check the total")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Outcome != OutcomeMarkers || tr.Len() != 2 {
		t.Fatalf("expected 2 marker steps, got %q %+v", tr.Outcome, tr.Steps)
	}
}

func TestSegment_MarkerFamilies(t *testing.T) {
	s := newTestSegmenter(t)

	lines := []string{
		"Step 3: multiply the two sides",
		"2. Add the two totals",
		"4) Add the two totals",
		"First, add the two totals",
		"Second, add the two totals",
		"Third, add the two totals",
		"Fourth, add the two totals",
		"Fifth, add the two totals",
		"Next, add the two totals",
		"Then, add the two totals",
		"Now, add the two totals",
		"Finally, the total is 12",
		"Therefore, the total is 12",
		"So, the total is 12",
		"Thus, the total is 12",
		"Hence, the total is 12",
		"As a result, the total is 12",
		"In conclusion, the total is 12",
		"To summarize, the total is 12",
		"Let me add the two totals",
		"I need to add the two totals",
		"I will add the two totals",
		"I should add the two totals",
		"I can add the two totals",
		"We can add the two totals",
		"We need to add the two totals",
		"Also, we add the two totals",
		"The factor is x2. It doubles",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			tr, err := s.Segment("Looking at the problem carefully\n" + line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.Outcome != OutcomeMarkers || tr.Len() != 2 {
				t.Fatalf("expected 2 marker steps, got %q %+v", tr.Outcome, tr.Steps)
			}
			if tr.Steps[1].Content != line {
				t.Fatalf("expected the marker line to start step 2, got %q", tr.Steps[1].Content)
			}
		})
	}
}

func TestSegment_ConnectiveWithoutCommaDoesNotSplit(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("We then add the totals and check them\nthen we compare the sums again")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Outcome == OutcomeMarkers {
		t.Fatalf("expected no marker split, got %+v", tr.Steps)
	}
	if tr.Len() != 1 {
		t.Fatalf("expected 1 step, got %+v", tr.Steps)
	}
}

func TestSegment_ShortUnmarkedLineKeepsKind(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("Answer: 42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Outcome != OutcomeLines {
		t.Fatalf("expected outcome %q, got %q", OutcomeLines, tr.Outcome)
	}
	assertSteps(t, tr.Steps, []Step{{Ordinal: 1, Content: "Answer: 42", Kind: KindConclusion}})
}

func TestSegment_ShortFragmentsDropped(t *testing.T) {
	s := newTestSegmenter(t)

	tr, err := s.Segment("1. a\n2. The second step is long enough")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSteps(t, tr.Steps, []Step{
		{Ordinal: 1, Content: "2. The second step is long enough", Kind: KindReasoning},
	})
}

func TestSegment_CannedTrainAnswer(t *testing.T) {
	s := newTestSegmenter(t)

	text := `Step 1: To work out the arrival time, I need the travel duration.
Step 2: Given information: departure time is 3 PM, speed is 60 mph, distance is 180 miles.
Step 3: Using the formula Time = Distance / Speed: 180 / 60 = 3 hours travel time.
Step 4: Adding travel time to departure: 3 PM + 3 hours = 6 PM.
Step 5: Therefore, the train will arrive at 6 PM.`

	tr, err := s.Segment(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 5 {
		t.Fatalf("expected 5 steps, got %d", tr.Len())
	}
	wantKinds := []StepKind{KindReasoning, KindAssumption, KindCalculation, KindCalculation, KindConclusion}
	for i, k := range wantKinds {
		if tr.Steps[i].Kind != k {
			t.Errorf("step %d kind = %q, want %q", i+1, tr.Steps[i].Kind, k)
		}
		if tr.Steps[i].Ordinal != i+1 {
			t.Errorf("step %d ordinal = %d", i+1, tr.Steps[i].Ordinal)
		}
	}
}

func TestSegment_Deterministic(t *testing.T) {
	s := newTestSegmenter(t)
	text := "Let me think.\nStep 1: 3 * 4 = 12\nSo, the result is 12.\nIn conclusion, twelve."

	first, err := s.Segment(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := s.Segment(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestSegment_NonEmptyInputAlwaysYieldsSteps(t *testing.T) {
	s := newTestSegmenter(t)

	inputs := []string{"a", "...", "Step 1:", "1.", "!!!", "hello world", "x\ny\nz", "Then, ok"}
	for _, in := range inputs {
		tr, err := s.Segment(in)
		if err != nil {
			t.Fatalf("Segment(%q): %v", in, err)
		}
		if tr.Len() == 0 {
			t.Errorf("Segment(%q) returned no steps", in)
		}
		for i, st := range tr.Steps {
			if st.Ordinal != i+1 {
				t.Errorf("Segment(%q) step %d has ordinal %d", in, i, st.Ordinal)
			}
			if st.Content != strings.TrimSpace(st.Content) || st.Content == "" {
				t.Errorf("Segment(%q) step %d content %q not trimmed", in, i, st.Content)
			}
		}
	}
}

func TestSegment_InputTooLarge(t *testing.T) {
	cfg := DefaultSegmenterConfig()
	cfg.MaxInputBytes = 16
	s, err := NewSegmenter(cfg)
	if err != nil {
		t.Fatalf("new segmenter: %v", err)
	}

	text := "Step 1: this text is far longer than sixteen bytes"
	_, err = s.Segment(text)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
	var segErr *SegmentError
	if !errors.As(err, &segErr) {
		t.Fatalf("expected *SegmentError, got %T", err)
	}

	tr := s.SegmentWithFallback(text)
	if tr.Outcome != OutcomeRecovered {
		t.Fatalf("expected recovered outcome, got %q", tr.Outcome)
	}
	if tr.Failure == "" {
		t.Fatal("expected failure reason")
	}
	assertSteps(t, tr.Steps, []Step{{Ordinal: 1, Content: text, Kind: KindReasoning}})
}

func TestSegment_InvalidUTF8(t *testing.T) {
	s := newTestSegmenter(t)

	_, err := s.Segment("Step 1: bad \xff byte")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	tr := s.SegmentWithFallback("Step 1: bad \xff byte")
	if tr.Outcome != OutcomeRecovered || tr.Len() != 1 {
		t.Fatalf("expected single recovered step, got %q %+v", tr.Outcome, tr.Steps)
	}
}

func TestSegmentWithFallback_PassesThroughSuccess(t *testing.T) {
	s := newTestSegmenter(t)

	tr := s.SegmentWithFallback("Step 1: I need to find 2+2.\nStep 2: The answer is 4.")
	if tr.Outcome != OutcomeMarkers || tr.Failure != "" || tr.Len() != 2 {
		t.Fatalf("unexpected transcript: %+v", tr)
	}
}

func TestNewSegmenter_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SegmenterConfig)
	}{
		{"bad marker", func(c *SegmenterConfig) { c.Markers = append(c.Markers, `(unclosed`) }},
		{"zero step length", func(c *SegmenterConfig) { c.MinStepLength = 0 }},
		{"zero sentence length", func(c *SegmenterConfig) { c.MinSentenceLength = 0 }},
		{"no kinds", func(c *SegmenterConfig) { c.Kinds = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSegmenterConfig()
			tt.mutate(&cfg)
			if _, err := NewSegmenter(cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClassifyStep_Priority(t *testing.T) {
	s := newTestSegmenter(t)

	tests := []struct {
		content string
		want    StepKind
	}{
		{"Therefore the result is 2 + 2", KindCalculation},
		{"We multiply the width by two", KindCalculation},
		{"In conclusion, the answer is Alice", KindConclusion},
		{"Given the facts, we find x", KindAssumption},
		{"Examine the options closely", KindAnalysis},
		{"The cat is black", KindReasoning},
	}
	for _, tt := range tests {
		if got := s.ClassifyStep(tt.content); got != tt.want {
			t.Errorf("ClassifyStep(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestSegment_CustomKinds(t *testing.T) {
	cfg := DefaultSegmenterConfig()
	cfg.Kinds = []KindRule{{Kind: KindAnalysis, Triggers: []string{"ZEBRA"}}}
	s, err := NewSegmenter(cfg)
	if err != nil {
		t.Fatalf("new segmenter: %v", err)
	}

	tr, err := s.Segment("Step 1: the zebra runs\nStep 2: the answer is 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Steps[0].Kind != KindAnalysis || tr.Steps[1].Kind != KindReasoning {
		t.Fatalf("unexpected kinds: %+v", tr.Steps)
	}
}
