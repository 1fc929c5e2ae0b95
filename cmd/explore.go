package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/render"
	"github.com/abhisek/thoughtchain/internal/store"
	"github.com/abhisek/thoughtchain/internal/tui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Open the interactive explorer (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplorer(cmd)
	},
}

// runExplorer opens the store, builds the service, and launches the TUI.
func runExplorer(cmd *cobra.Command) error {
	mode := render.ModeCards
	if cmd.Flags().Lookup("mode") != nil {
		name, _ := cmd.Flags().GetString("mode")
		m, err := render.ParseMode(name)
		if err != nil {
			return err
		}
		mode = m
	}

	noSave := false
	if cmd.Flags().Lookup("no-save") != nil {
		noSave, _ = cmd.Flags().GetBool("no-save")
	}

	var st *store.Store
	if !noSave {
		var err error
		if st, err = openStore(cmd); err != nil {
			return err
		}
		defer st.Close()
	}

	svc, err := newService(cmd.Context(), st)
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), tui.Options{
		Service:     svc,
		Model:       cfg.LLM.ActiveModel(),
		Mode:        mode,
		MaxTokens:   cfg.CoT.MaxTokens,
		Temperature: cfg.CoT.Temperature,
		History:     st != nil,
	})
}

func init() {
	exploreCmd.Flags().StringP("mode", "m", string(render.ModeCards), "Initial step layout: cards, compact or timeline")
	exploreCmd.Flags().Bool("no-save", false, "Do not store runs or LLM events")
}
