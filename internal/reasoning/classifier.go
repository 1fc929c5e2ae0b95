package reasoning

import "strings"

// ClassifierConfig holds the trigger lists for each category.
// The lists are expected to be disjoint; order within a list does not
// affect the result.
type ClassifierConfig struct {
	Math   []string
	Logic  []string
	Riddle []string
}

// DefaultClassifierConfig returns the built-in trigger lists.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Math: []string{
			"calculate", "solve", "equation", "multiply", "divide", "add", "subtract",
			"percent", "%", "fraction", "decimal", "number", "sum", "difference",
			"mph", "distance", "speed", "miles", "price", "discount", "cost",
			"how many", "how much", "feet", "perimeter", "area", "total", "×", "+",
		},
		Logic: []string{
			"if", "then", "either", "neither", "taller", "shorter", "faster", "slower",
			"older", "younger", "before", "after", "always", "never", "every",
			"conclude", "deduce", "implies",
		},
		Riddle: []string{
			"riddle", "what am i", "who am i", "guess", "mystery", "puzzle",
			"keys", "locks", "what has", "what gets", "what can", "what goes",
		},
	}
}

type categoryRule struct {
	category Category
	triggers []string
}

// Classifier maps problem text to a Category by keyword matching.
// Rules are evaluated in fixed precedence: math, logic, riddle.
type Classifier struct {
	rules []categoryRule
}

// NewClassifier creates a Classifier from cfg. Triggers are lowercased.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{
		rules: []categoryRule{
			{category: CategoryMath, triggers: lowerAll(cfg.Math)},
			{category: CategoryLogic, triggers: lowerAll(cfg.Logic)},
			{category: CategoryRiddle, triggers: lowerAll(cfg.Riddle)},
		},
	}
}

// Classify returns the category of problem. It never fails: text that
// matches no trigger (including the empty string) is CategoryGeneral.
func (c *Classifier) Classify(problem string) Category {
	lowered := strings.ToLower(problem)
	for _, r := range c.rules {
		if containsAny(lowered, r.triggers) {
			return r.category
		}
	}
	return CategoryGeneral
}

var defaultClassifier = NewClassifier(DefaultClassifierConfig())

// Classify classifies problem with the default trigger lists.
func Classify(problem string) Category {
	return defaultClassifier.Classify(problem)
}
