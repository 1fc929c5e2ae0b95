package llm

import "strings"

// ModelCost is the list price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one or more calls.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// Free reports whether the model costs nothing to run.
func (c ModelCost) Free() bool {
	return c.InputPerMTok == 0 && c.OutputPerMTok == 0
}

// LookupCost returns the price of a model as recorded in LLM events.
// Gemini's "models/" prefix and OpenRouter vendor prefixes are ignored,
// as are Ollama size tags ("phi3:mini"). Local Ollama models are free.
func LookupCost(modelID string) (ModelCost, bool) {
	id := normalizeModelID(modelID)
	if c, ok := modelCosts[id]; ok {
		return c, true
	}
	base, _, tagged := strings.Cut(id, ":")
	if tagged {
		if _, ok := localModels[base]; ok {
			return ModelCost{}, true
		}
	}
	if _, ok := localModels[id]; ok {
		return ModelCost{}, true
	}
	return ModelCost{}, false
}

func normalizeModelID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "models/")
	if _, rest, ok := strings.Cut(id, "/"); ok {
		id = rest
	}
	return id
}

// localModels are served by Ollama on the user's machine.
var localModels = map[string]struct{}{
	"phi":       {},
	"phi3":      {},
	"phi3.5":    {},
	"phi4":      {},
	"phi4-mini": {},
	"llama3":    {},
	"llama3.1":  {},
	"llama3.2":  {},
	"mistral":   {},
	"gemma2":    {},
	"gemma3":    {},
	"qwen2.5":   {},
}

// modelCosts lists hosted models. Prices from models.dev, February 2026.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku-20241022":  {0.8, 4},
	"claude-3-5-haiku-latest":    {0.8, 4},
	"claude-3-5-sonnet-20241022": {3, 15},
	"claude-3-7-sonnet-20250219": {3, 15},
	"claude-3-haiku-20240307":    {0.25, 1.25},
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-opus-4-1":            {15, 75},
	"claude-opus-4-5":            {5, 25},
	"claude-sonnet-4-0":          {3, 15},
	"claude-sonnet-4-20250514":   {3, 15},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-3.5-turbo": {0.5, 1.5},
	"gpt-4-turbo":   {10, 30},
	"gpt-4.1":       {2, 8},
	"gpt-4.1-mini":  {0.4, 1.6},
	"gpt-4.1-nano":  {0.1, 0.4},
	"gpt-4o":        {2.5, 10},
	"gpt-4o-mini":   {0.15, 0.6},
	"gpt-5":         {1.25, 10},
	"gpt-5-mini":    {0.25, 2},
	"gpt-5-nano":    {0.05, 0.4},
	"o3-mini":       {1.1, 4.4},
	"o4-mini":       {1.1, 4.4},

	// Google
	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	// Microsoft Phi via OpenRouter
	"phi-3-mini-128k-instruct":   {0.1, 0.1},
	"phi-3-medium-128k-instruct": {1, 1},
	"phi-3.5-mini-128k-instruct": {0.1, 0.1},
	"phi-4":                      {0.07, 0.14},
}
