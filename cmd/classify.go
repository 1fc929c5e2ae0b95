package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/render"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [problem]",
	Short: "Print the category a problem would be solved as",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reasoning.Classify(text))
		return nil
	},
}

var segmentCmd = &cobra.Command{
	Use:   "segment [file]",
	Short: "Split reasoning text into typed steps",
	Long: "Segment splits existing reasoning text (a file, or stdin when no file or\n" +
		"\"-\" is given) into steps without calling an LLM.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		text, err := readFileOrStdin(cmd, path)
		if err != nil {
			return err
		}

		seg, err := reasoning.NewSegmenter(reasoning.DefaultSegmenterConfig())
		if err != nil {
			return err
		}
		t := seg.SegmentWithFallback(text)

		opts, err := renderOptions(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch t.Outcome {
		case reasoning.OutcomeEmpty:
			fmt.Fprintln(out, "No reasoning text to segment.")
			return nil
		case reasoning.OutcomeRecovered:
			fmt.Fprintf(out, "Could not split into steps (%s); showing the whole text.\n\n", t.Failure)
		}

		fmt.Fprintln(out, render.Steps(t.Steps, opts.Mode, opts.Width))
		if t.Len() > 1 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, render.Summary(t.Steps))
		}
		if opts.ShowCharts {
			fmt.Fprintln(out)
			fmt.Fprintln(out, strings.Join([]string{render.Flow(t.Steps), render.Distribution(t.Steps, 20)}, "\n\n"))
		}
		return nil
	},
}

func init() {
	addRenderFlags(segmentCmd)
}
