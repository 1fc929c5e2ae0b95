package cot

// Generation limits accepted from callers.
const (
	MinMaxTokens = 50
	MaxMaxTokens = 500
)

// Config controls the chain-of-thought pipeline.
type Config struct {
	// MaxTokens is the default generation budget when a request
	// leaves it unset.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature is the default sampling temperature (0.0-1.0).
	Temperature float64 `mapstructure:"temperature"`

	// Templates holds the per-category prompt templates.
	Templates Templates `mapstructure:"templates"`
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   200,
		Temperature: 0.7,
		Templates:   DefaultTemplates(),
	}
}
