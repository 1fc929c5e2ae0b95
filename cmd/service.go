package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/llm"
	"github.com/abhisek/thoughtchain/internal/store"
)

// newService builds the reasoning service on the configured provider.
// With a nil store, LLM events and runs are not persisted.
func newService(ctx context.Context, st *store.Store) (*cot.Service, error) {
	var events store.EventRepo
	opts := []cot.Option{cot.WithLogger(componentLogger("cot"))}
	if st != nil {
		events = st.EventRepo()
		opts = append(opts, cot.WithRunRepo(st.RunRepo()))
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, events, componentLogger("llm"))
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	logger.Debug("using LLM provider", "provider", cfg.LLM.Provider, "model", provider.ModelID())

	gen := cot.NewLLMGenerator(provider, cfg.CoT.Templates)
	return cot.NewService(gen, cfg.CoT, opts...), nil
}
