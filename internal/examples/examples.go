// Package examples holds the built-in catalog of sample problems.
package examples

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/thoughtchain/internal/reasoning"
)

// Difficulty is a coarse difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
)

// Example is one sample problem.
type Example struct {
	ID         string             `json:"id"`
	Question   string             `json:"question"`
	Category   reasoning.Category `json:"category"`
	Topic      string             `json:"topic"`
	Difficulty Difficulty         `json:"difficulty"`
}

var catalog = []Example{
	// Math
	{"math-1", "If a train leaves the station at 3 PM traveling at 60 mph and needs to cover 180 miles, what time will it arrive?", reasoning.CategoryMath, "time_distance", DifficultyMedium},
	{"math-2", "A store offers a 25% discount on a $80 item. What is the final price after a 8% sales tax is applied?", reasoning.CategoryMath, "percentage", DifficultyMedium},
	{"math-3", "If 3 workers can build a wall in 6 days, how many days will it take 9 workers to build the same wall?", reasoning.CategoryMath, "work_rate", DifficultyMedium},
	{"math-4", "What is 123 × 45?", reasoning.CategoryMath, "arithmetic", DifficultyEasy},
	{"math-5", "A rectangular garden is 15 feet long and 8 feet wide. If you want to put a fence around it, how many feet of fencing do you need?", reasoning.CategoryMath, "geometry", DifficultyEasy},

	// Logic
	{"logic-1", "Alice is taller than Bob. Bob is taller than Carol. Carol is taller than David. Who is the tallest?", reasoning.CategoryLogic, "ordering", DifficultyEasy},
	{"logic-2", "If all roses are flowers, and some flowers are red, can we conclude that some roses are red?", reasoning.CategoryLogic, "logical_reasoning", DifficultyMedium},
	{"logic-3", "In a race, Tom finished before Jerry, Jerry finished before Spike, and Spike finished before Tyke. If there were only these 4 participants, what was Jerry's position?", reasoning.CategoryLogic, "ordering", DifficultyEasy},
	{"logic-4", "Every student in the class passed the test. Sarah is in the class. Did Sarah pass the test?", reasoning.CategoryLogic, "deduction", DifficultyEasy},
	{"logic-5", "If it rains, then the ground gets wet. The ground is wet. Did it rain?", reasoning.CategoryLogic, "logical_fallacy", DifficultyMedium},

	// Riddles
	{"riddle-1", "I have keys but no locks. I have space but no room. You can enter but not go outside. What am I?", reasoning.CategoryRiddle, "wordplay", DifficultyMedium},
	{"riddle-2", "What gets wetter as it dries?", reasoning.CategoryRiddle, "wordplay", DifficultyEasy},
	{"riddle-3", "I'm tall when I'm young and short when I'm old. What am I?", reasoning.CategoryRiddle, "metaphor", DifficultyEasy},
	{"riddle-4", "What has an eye but cannot see?", reasoning.CategoryRiddle, "wordplay", DifficultyEasy},
	{"riddle-5", "The more you take, the more you leave behind. What am I?", reasoning.CategoryRiddle, "wordplay", DifficultyMedium},
}

// All returns every example in catalog order.
func All() []Example {
	out := make([]Example, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the example with the given ID.
func Get(id string) (Example, error) {
	for _, e := range catalog {
		if e.ID == id {
			return e, nil
		}
	}
	return Example{}, fmt.Errorf("unknown example %q", id)
}

// ByCategory returns the examples of one category.
func ByCategory(c reasoning.Category) []Example {
	return filter(func(e Example) bool { return e.Category == c })
}

// ByTopic returns the examples with the given topic, e.g. "wordplay".
func ByTopic(topic string) []Example {
	return filter(func(e Example) bool { return e.Topic == topic })
}

// ByDifficulty returns the examples with the given difficulty.
func ByDifficulty(d Difficulty) []Example {
	return filter(func(e Example) bool { return e.Difficulty == d })
}

// Random picks an example. An empty category picks from the whole catalog.
// A nil r uses the package-level source.
func Random(r *rand.Rand, c reasoning.Category) (Example, error) {
	pool := catalog
	if c != "" {
		pool = ByCategory(c)
	}
	if len(pool) == 0 {
		return Example{}, fmt.Errorf("no examples for category %q", c)
	}
	if r == nil {
		return pool[rand.IntN(len(pool))], nil
	}
	return pool[r.IntN(len(pool))], nil
}

func filter(keep func(Example) bool) []Example {
	var out []Example
	for _, e := range catalog {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
