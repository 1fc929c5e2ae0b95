package cot

import (
	"strings"

	"github.com/abhisek/thoughtchain/internal/reasoning"
)

// problemPlaceholder is substituted with the problem text in a template.
const problemPlaceholder = "{problem}"

const systemPrompt = `You are a careful problem solver.

Rules:
- Work through the problem one step at a time before giving the answer.
- Put each step on its own line, starting with "Step N:".
- Show every calculation explicitly, e.g. "3 * 4 = 12".
- State any assumption you make.
- End with a line that starts with "Therefore," and states the final answer.`

// Templates maps a category to its user prompt template. Each template
// contains the {problem} placeholder exactly once.
type Templates map[reasoning.Category]string

// DefaultTemplates returns the built-in chain-of-thought prompt templates.
func DefaultTemplates() Templates {
	return Templates{
		reasoning.CategoryGeneral: "Let's think step by step.\n\nProblem: {problem}\n\nSolution:",
		reasoning.CategoryMath:    "Let's solve this math problem step by step.\n\nProblem: {problem}\n\nStep-by-step solution:",
		reasoning.CategoryLogic:   "Let's analyze this logic problem step by step.\n\nProblem: {problem}\n\nReasoning:",
		reasoning.CategoryRiddle:  "Let's think through this riddle step by step.\n\nRiddle: {problem}\n\nStep-by-step thinking:",
	}
}

// Build renders the prompt for category. Categories without a template use
// the general template.
func (t Templates) Build(category reasoning.Category, problem string) string {
	tmpl, ok := t[category]
	if !ok {
		tmpl, ok = t[reasoning.CategoryGeneral]
	}
	if !ok {
		tmpl = DefaultTemplates()[reasoning.CategoryGeneral]
	}
	return strings.Replace(tmpl, problemPlaceholder, strings.TrimSpace(problem), 1)
}

// BuildPrompt renders the default template for category.
func BuildPrompt(category reasoning.Category, problem string) string {
	return DefaultTemplates().Build(category, problem)
}
