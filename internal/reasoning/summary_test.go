package reasoning

import "testing"

func TestSummarize(t *testing.T) {
	steps := []Step{
		{Ordinal: 1, Content: "Let x be the price", Kind: KindAssumption},
		{Ordinal: 2, Content: "x = 4 * 5", Kind: KindCalculation},
		{Ordinal: 3, Content: "So x is 20", Kind: KindConclusion},
		{Ordinal: 4, Content: "Check 20 / 5 = 4", Kind: KindCalculation},
		{Ordinal: 5, Content: "Therefore the answer is 20", Kind: KindConclusion},
	}

	sum := Summarize(steps)
	if sum.Total != 5 {
		t.Fatalf("expected total 5, got %d", sum.Total)
	}
	want := []KindCount{
		{Kind: KindCalculation, Count: 2},
		{Kind: KindConclusion, Count: 2},
		{Kind: KindAssumption, Count: 1},
	}
	if len(sum.Counts) != len(want) {
		t.Fatalf("counts = %+v, want %+v", sum.Counts, want)
	}
	for i := range want {
		if sum.Counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, sum.Counts[i], want[i])
		}
	}
	if sum.FinalAnswer != "Therefore the answer is 20" {
		t.Errorf("final answer = %q", sum.FinalAnswer)
	}
	if got := sum.Share(KindCalculation); got != 0.4 {
		t.Errorf("calculation share = %v, want 0.4", got)
	}
	if got := sum.Share(KindAnalysis); got != 0 {
		t.Errorf("analysis share = %v, want 0", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	if sum.Total != 0 || len(sum.Counts) != 0 || sum.FinalAnswer != "" {
		t.Fatalf("unexpected summary for no steps: %+v", sum)
	}
	if sum.Share(KindReasoning) != 0 {
		t.Error("expected zero share for empty summary")
	}
}
