// Package config loads thoughtchain settings from defaults, an optional
// YAML file and THOUGHTCHAIN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/export"
	"github.com/abhisek/thoughtchain/internal/llm"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "THOUGHTCHAIN"

type Config struct {
	LLM    llm.Config       `mapstructure:"llm"`
	CoT    cot.Config       `mapstructure:"cot"`
	Log    LogConfig        `mapstructure:"log"`
	Store  StoreConfig      `mapstructure:"store"`
	Server ServerConfig     `mapstructure:"server"`
	PDF    export.PDFConfig `mapstructure:"pdf"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type StoreConfig struct {
	// Path is the SQLite database file. Empty selects the XDG data dir.
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DefaultPath returns $XDG_CONFIG_HOME/thoughtchain/config.yaml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "thoughtchain", "config.yaml"), nil
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none)
// into the process environment. Missing files are ignored and existing
// variables are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration. An explicit path must exist; with an empty
// path the default location is tried and silently skipped when absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// No default so an unset provider can be discovered from API keys.
	if err := v.BindEnv("llm.provider"); err != nil {
		return nil, fmt.Errorf("bind llm.provider: %w", err)
	}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v.SetConfigFile(path)

	found := true
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		found = false
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if found {
		cfg.File = v.ConfigFileUsed()
	}

	if cfg.LLM.Provider == "" {
		applyDiscovered(&cfg.LLM)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be fixed up by defaults.
func (c *Config) Validate() error {
	if c.CoT.MaxTokens < cot.MinMaxTokens || c.CoT.MaxTokens > cot.MaxMaxTokens {
		return fmt.Errorf("cot.max_tokens must be between %d and %d, got %d",
			cot.MinMaxTokens, cot.MaxMaxTokens, c.CoT.MaxTokens)
	}
	if c.CoT.Temperature < 0 || c.CoT.Temperature > 1 {
		return fmt.Errorf("cot.temperature must be between 0 and 1, got %g", c.CoT.Temperature)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	return nil
}

// applyDiscovered selects a provider from well-known API key variables,
// keeping any model or URL settings already loaded. Ollama is used when
// nothing is found.
func applyDiscovered(cfg *llm.Config) {
	found, ok := llm.DiscoverConfig()
	if !ok {
		cfg.Provider = llm.ProviderOllama
		return
	}

	cfg.Provider = found.Provider
	switch found.Provider {
	case llm.ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			cfg.Gemini.APIKey = found.Gemini.APIKey
		}
	case llm.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			cfg.OpenAI.APIKey = found.OpenAI.APIKey
		}
	case llm.ProviderAnthropic:
		if cfg.Anthropic.APIKey == "" {
			cfg.Anthropic.APIKey = found.Anthropic.APIKey
		}
	case llm.ProviderOpenRouter:
		if cfg.OpenRouter.APIKey == "" {
			cfg.OpenRouter.APIKey = found.OpenRouter.APIKey
		}
	case llm.ProviderOllama:
		cfg.Ollama.Host = found.Ollama.Host
	}
}

func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.ollama.host", l.Ollama.Host)
	v.SetDefault("llm.ollama.model", l.Ollama.Model)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.timeout", l.Timeout)

	c := cot.DefaultConfig()
	v.SetDefault("cot.max_tokens", c.MaxTokens)
	v.SetDefault("cot.temperature", c.Temperature)
	for category, tmpl := range c.Templates {
		v.SetDefault("cot.templates."+string(category), tmpl)
	}

	v.SetDefault("log.level", "warn")
	v.SetDefault("store.path", "")

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 2*l.Timeout)

	p := export.DefaultPDFConfig()
	v.SetDefault("pdf.page_size", p.PageSize)
	v.SetDefault("pdf.margins_mm", p.MarginsMM)
	v.SetDefault("pdf.font_family", p.FontFamily)
	v.SetDefault("pdf.primary_color", p.PrimaryColor[:])
}
