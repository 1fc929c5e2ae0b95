package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/reasoning"
)

func sampleSteps() []reasoning.Step {
	return []reasoning.Step{
		{Ordinal: 1, Content: "Assume the train travels at 60 mph.", Kind: reasoning.KindAssumption},
		{Ordinal: 2, Content: "180 / 60 = 3 hours.", Kind: reasoning.KindCalculation},
		{Ordinal: 3, Content: "Therefore it arrives at 6 PM.", Kind: reasoning.KindConclusion},
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(strings.ToUpper(string(m)))
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("pie"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestModeNext(t *testing.T) {
	if ModeCards.Next() != ModeCompact || ModeCompact.Next() != ModeTimeline || ModeTimeline.Next() != ModeCards {
		t.Fatal("unexpected mode cycle")
	}
	if Mode("").Next() != ModeCards {
		t.Fatal("unknown mode should cycle to cards")
	}
}

func TestKindLabel(t *testing.T) {
	if got := KindLabel(reasoning.KindCalculation); got != "Calculation" {
		t.Fatalf("expected Calculation, got %q", got)
	}
}

func TestCards(t *testing.T) {
	out := ansi.Strip(Cards(sampleSteps(), 60))
	for _, want := range []string{"Step 1", "Step 3", "Type: Assumption", "Type: Conclusion", "180 / 60 = 3 hours."} {
		if !strings.Contains(out, want) {
			t.Errorf("cards output missing %q:\n%s", want, out)
		}
	}
}

func TestCompact(t *testing.T) {
	out := ansi.Strip(Compact(sampleSteps(), 0))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Step 2: 180 / 60 = 3 hours.") {
		t.Fatalf("unexpected line: %q", lines[1])
	}
}

func TestTimelineOrder(t *testing.T) {
	out := ansi.Strip(Timeline(sampleSteps(), 0))
	first := strings.Index(out, "Assume the train")
	last := strings.Index(out, "Therefore it arrives")
	if first < 0 || last < 0 || first > last {
		t.Fatalf("steps out of order:\n%s", out)
	}
	if strings.Count(out, "│") != 2 {
		t.Fatalf("expected 2 connectors:\n%s", out)
	}
}

func TestEmptySteps(t *testing.T) {
	for _, mode := range Modes() {
		if out := ansi.Strip(Steps(nil, mode, 40)); out != emptyMessage {
			t.Errorf("%s: expected %q, got %q", mode, emptyMessage, out)
		}
	}
}

func TestSummary(t *testing.T) {
	out := ansi.Strip(Summary(sampleSteps()))
	for _, want := range []string{"Calculation 1", "Conclusion 1", "Assumption 1", "Final Answer", "Therefore it arrives at 6 PM."} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	noConclusion := sampleSteps()[:2]
	if strings.Contains(ansi.Strip(Summary(noConclusion)), "Final Answer") {
		t.Error("summary without a conclusion must not show a final answer")
	}
}

func TestFlow(t *testing.T) {
	if got := ansi.Strip(Flow(sampleSteps())); got != "(1) → (2) → (3)" {
		t.Fatalf("unexpected flow %q", got)
	}
}

func TestDistribution(t *testing.T) {
	steps := append(sampleSteps(), reasoning.Step{Ordinal: 4, Content: "4 * 2 = 8 more.", Kind: reasoning.KindCalculation})
	out := ansi.Strip(Distribution(steps, 10))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title and 3 bars, got:\n%s", out)
	}
	if !strings.Contains(lines[1], "Calculation") || !strings.Contains(lines[1], strings.Repeat("█", 10)) || !strings.Contains(lines[1], "2 (50%)") {
		t.Fatalf("unexpected calculation bar: %q", lines[1])
	}
	if !strings.Contains(lines[2], strings.Repeat("█", 5)+strings.Repeat("░", 5)) {
		t.Fatalf("unexpected conclusion bar: %q", lines[2])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"a longer sentence", 10, "a longe..."},
		{"abc", 0, ""},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRun(t *testing.T) {
	run := &cot.Run{
		Problem:    "If a train travels 180 miles at 60 mph, how long does it take?",
		Category:   reasoning.CategoryMath,
		Model:      "phi",
		Raw:        "raw text",
		StopReason: "max_tokens",
		Latency:    1234 * time.Millisecond,
		Transcript: reasoning.Transcript{Steps: sampleSteps(), Outcome: reasoning.OutcomeMarkers},
	}

	out := ansi.Strip(Run(run, Options{Mode: ModeCompact, ShowRaw: true, ShowSummary: true, ShowCharts: true}))
	for _, want := range []string{"category: math", "model: phi", "latency: 1.234s", "token limit", "Raw Response", "raw text", "Final Answer", "(1) → (2) → (3)", "Step Type Distribution"} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}

	plain := ansi.Strip(Run(run, Options{Mode: ModeCards}))
	if strings.Contains(plain, "Raw Response") || strings.Contains(plain, "Final Answer") {
		t.Errorf("optional sections should be hidden:\n%s", plain)
	}
}
