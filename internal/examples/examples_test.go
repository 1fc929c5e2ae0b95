package examples

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/thoughtchain/internal/reasoning"
)

func TestCatalogClassifiesToOwnCategory(t *testing.T) {
	for _, e := range All() {
		t.Run(e.ID, func(t *testing.T) {
			if got := reasoning.Classify(e.Question); got != e.Category {
				t.Errorf("Classify(%q) = %q, want %q", e.Question, got, e.Category)
			}
		})
	}
}

func TestCatalogShape(t *testing.T) {
	if n := len(All()); n != 15 {
		t.Fatalf("expected 15 examples, got %d", n)
	}
	for _, c := range []reasoning.Category{reasoning.CategoryMath, reasoning.CategoryLogic, reasoning.CategoryRiddle} {
		if n := len(ByCategory(c)); n != 5 {
			t.Errorf("expected 5 %s examples, got %d", c, n)
		}
	}
	if n := len(ByCategory(reasoning.CategoryGeneral)); n != 0 {
		t.Errorf("expected no general examples, got %d", n)
	}

	seen := map[string]bool{}
	for _, e := range All() {
		if seen[e.ID] {
			t.Errorf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestFilters(t *testing.T) {
	if n := len(ByTopic("wordplay")); n != 4 {
		t.Errorf("expected 4 wordplay examples, got %d", n)
	}
	if n := len(ByTopic("ordering")); n != 2 {
		t.Errorf("expected 2 ordering examples, got %d", n)
	}
	easy, medium := len(ByDifficulty(DifficultyEasy)), len(ByDifficulty(DifficultyMedium))
	if easy+medium != 15 || easy != 8 {
		t.Errorf("unexpected difficulty split: easy=%d medium=%d", easy, medium)
	}
}

func TestGet(t *testing.T) {
	e, err := Get("riddle-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Question != "What gets wetter as it dries?" {
		t.Fatalf("unexpected question %q", e.Question)
	}
	if _, err := Get("nope"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		e, err := Random(r, reasoning.CategoryLogic)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Category != reasoning.CategoryLogic {
			t.Fatalf("expected logic, got %q", e.Category)
		}
	}

	if _, err := Random(nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Random(r, reasoning.CategoryGeneral); err == nil {
		t.Fatal("expected error for a category without examples")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Question = "changed"
	if All()[0].Question == "changed" {
		t.Fatal("All must not expose the catalog")
	}
}
