package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/llm"
	"github.com/abhisek/thoughtchain/internal/store"
)

const reasoningText = "Step 1: 15 + 15 + 8 + 8 = 46.\nStep 2: Therefore, 46 feet of fencing."

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("THOUGHTCHAIN_LLM_PROVIDER", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

// seedRun stores one solved run in a new database and returns its path
// and the run ID.
func seedRun(t *testing.T) (string, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "thoughtchain.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	svc := cot.NewService(
		cot.NewLLMGenerator(llm.NewMockProvider(llm.MockResponse{Content: reasoningText}), nil),
		cot.DefaultConfig(),
		cot.WithRunRepo(st.RunRepo()),
	)
	run, err := svc.Solve(t.Context(), cot.SolveInput{Problem: "How much fencing for a 15 by 8 garden?"})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return dbPath, run.ID
}

func TestClassify(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"What", "is", "123", "×", "45?"}, "math"},
		{[]string{"What gets wetter as it dries?"}, "riddle"},
	}
	for _, tt := range tests {
		out, err := execute(t, "", append([]string{"classify"}, tt.args...)...)
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("classify %q = %q, want %q", tt.args, strings.TrimSpace(out), tt.want)
		}
	}
}

func TestSegment_Stdin(t *testing.T) {
	out, err := execute(t, reasoningText, "segment", "--mode", "compact")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if !strings.Contains(out, "15 + 15 + 8 + 8 = 46") || !strings.Contains(out, "46 feet of fencing") {
		t.Fatalf("expected both steps in output:\n%s", out)
	}
}

func TestSegment_Empty(t *testing.T) {
	out, err := execute(t, "   \n", "segment", "-")
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if !strings.Contains(out, "No reasoning text") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestExamples_FilterByCategory(t *testing.T) {
	out, err := execute(t, "", "examples", "--category", "riddle")
	if err != nil {
		t.Fatalf("examples: %v", err)
	}
	if !strings.Contains(out, "riddle-1") {
		t.Fatalf("expected riddle examples:\n%s", out)
	}
	if strings.Contains(out, "math-1") {
		t.Fatalf("math examples should be filtered out:\n%s", out)
	}
}

func TestHistory_ListViewStatsDelete(t *testing.T) {
	dbPath, id := seedRun(t)

	out, err := execute(t, "", "history", "list", "--db", dbPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, id) {
		t.Fatalf("expected run %s in list:\n%s", id, out)
	}

	out, err = execute(t, "", "history", "view", id, "--db", dbPath)
	if err != nil {
		t.Fatalf("history view: %v", err)
	}
	if !strings.Contains(out, "46 feet of fencing") {
		t.Fatalf("expected steps in view:\n%s", out)
	}

	out, err = execute(t, "", "history", "stats", "--db", dbPath)
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	if !strings.Contains(out, "math") || !strings.Contains(out, "Conclusion") {
		t.Fatalf("unexpected stats:\n%s", out)
	}

	if _, err := execute(t, "", "history", "delete", id, "--db", dbPath); err != nil {
		t.Fatalf("history delete: %v", err)
	}
	if _, err := execute(t, "", "history", "view", id, "--db", dbPath); err == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestExport_InfersFormatFromPath(t *testing.T) {
	dbPath, id := seedRun(t)
	target := filepath.Join(t.TempDir(), "run.json")

	if _, err := execute(t, "", "export", id, "-o", target, "--db", dbPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc struct {
		ID    string `json:"id"`
		Steps []struct {
			Kind string `json:"kind"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.ID != id || len(doc.Steps) != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo wörld", 5); got != "héllo" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}

func TestFormatCost(t *testing.T) {
	if got := formatCost(0.004); got != "$0.0040" {
		t.Errorf("formatCost(0.004) = %q", got)
	}
	if got := formatCost(1.5); got != "$1.50" {
		t.Errorf("formatCost(1.5) = %q", got)
	}
}

func TestPrintModelCost(t *testing.T) {
	var out bytes.Buffer
	printModelCost(&out, []store.ModelUsage{
		{Model: "gpt-4o-mini", Calls: 2, InputTokens: 1_000_000, OutputTokens: 0},
		{Model: "phi3:mini", Calls: 1, InputTokens: 500, OutputTokens: 200},
		{Model: "mock", Calls: 4, InputTokens: 10, OutputTokens: 10},
	})

	got := out.String()
	for _, want := range []string{"$0.15", "local", "TOTAL (partial)", "No pricing for: mock"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
}
