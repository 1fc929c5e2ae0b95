package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/examples"
	"github.com/abhisek/thoughtchain/internal/export"
	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/render"
	"github.com/abhisek/thoughtchain/internal/store"
)

var solveCmd = &cobra.Command{
	Use:   "solve [problem]",
	Short: "Solve a problem step by step",
	Long: "Solve classifies the problem, asks the LLM for step-by-step reasoning and\n" +
		"prints the segmented steps. The problem is read from stdin when no\n" +
		"argument is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := solveInput(cmd, args)
		if err != nil {
			return err
		}

		noSave, _ := cmd.Flags().GetBool("no-save")
		var st *store.Store
		if !noSave {
			if st, err = openStore(cmd); err != nil {
				return err
			}
			defer st.Close()
		}

		svc, err := newService(cmd.Context(), st)
		if err != nil {
			return err
		}

		run, err := svc.Solve(cmd.Context(), in)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return export.JSON(out, run)
		}

		opts, err := renderOptions(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, render.Run(run, opts))
		if !noSave {
			fmt.Fprintf(out, "\nSaved as %s\n", run.ID)
		}
		return nil
	},
}

// solveInput builds a SolveInput from args or --example plus the
// generation flags.
func solveInput(cmd *cobra.Command, args []string) (cot.SolveInput, error) {
	var in cot.SolveInput

	if id, _ := cmd.Flags().GetString("example"); id != "" {
		e, err := examples.Get(id)
		if err != nil {
			return in, err
		}
		in.Problem = e.Question
	} else {
		text, err := readText(cmd, args)
		if err != nil {
			return in, err
		}
		in.Problem = strings.TrimSpace(text)
	}

	in.MaxTokens, _ = cmd.Flags().GetInt("max-tokens")
	in.Temperature, _ = cmd.Flags().GetFloat64("temperature")

	if c, _ := cmd.Flags().GetString("category"); c != "" {
		category, err := reasoning.ParseCategory(c)
		if err != nil {
			return in, err
		}
		in.Category = category
	}
	return in, nil
}

func renderOptions(cmd *cobra.Command) (render.Options, error) {
	modeName, _ := cmd.Flags().GetString("mode")
	mode, err := render.ParseMode(modeName)
	if err != nil {
		return render.Options{}, err
	}
	raw, _ := cmd.Flags().GetBool("raw")
	charts, _ := cmd.Flags().GetBool("charts")
	width, _ := cmd.Flags().GetInt("width")
	return render.Options{
		Mode:        mode,
		Width:       width,
		ShowRaw:     raw,
		ShowSummary: true,
		ShowCharts:  charts,
	}, nil
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-tokens", 0, fmt.Sprintf("Generation budget, %d-%d (default from cot.max_tokens)", cot.MinMaxTokens, cot.MaxMaxTokens))
	cmd.Flags().Float64("temperature", 0, "Sampling temperature, 0-1 (default from cot.temperature)")
	cmd.Flags().StringP("category", "c", "", "Override the detected category (math, logic, riddle, general)")
	cmd.Flags().StringP("example", "e", "", "Solve a bundled example by ID (see the examples command)")
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", string(render.ModeCards), "Step layout: cards, compact or timeline")
	cmd.Flags().Bool("raw", false, "Show the raw LLM response")
	cmd.Flags().Bool("charts", false, "Show the step flow and kind distribution")
	cmd.Flags().Int("width", 80, "Render width in columns")
}

func init() {
	addGenerationFlags(solveCmd)
	addRenderFlags(solveCmd)
	solveCmd.Flags().Bool("no-save", false, "Do not store the run or its LLM events")
	solveCmd.Flags().Bool("json", false, "Print the run as JSON instead of rendering it")
}
