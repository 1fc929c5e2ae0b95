package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench [problem]",
	Short: "Solve a problem repeatedly and report latency",
	Long: "Bench solves the same problem several times. LLM events are recorded\n" +
		"under the \"bench\" purpose; the runs themselves are not saved.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := solveInput(cmd, args)
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("runs")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		svc, err := newService(cmd.Context(), s)
		if err != nil {
			return err
		}

		res, err := svc.Bench(cmd.Context(), in, n)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Fprintf(out, "Problem:   %s\n", truncate(res.Problem, 72))
		fmt.Fprintf(out, "Category:  %s\n\n", res.Category)
		fmt.Fprintf(out, "%4s  %10s  %6s  %7s  %s\n", "#", "Latency", "Steps", "Tokens", "Error")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, r := range res.Runs {
			fmt.Fprintf(out, "%4d  %10s  %6d  %7d  %s\n",
				r.Iteration, r.Latency.Round(time.Millisecond), r.Steps, r.Tokens, truncate(r.Err, 30))
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "min %s · avg %s · max %s · %d/%d failed\n",
			res.Min.Round(time.Millisecond),
			res.Avg.Round(time.Millisecond),
			res.Max.Round(time.Millisecond),
			res.Failures, len(res.Runs))
		return nil
	},
}

func init() {
	addGenerationFlags(benchCmd)
	benchCmd.Flags().IntP("runs", "n", 3, "Number of iterations")
	benchCmd.Flags().Bool("json", false, "Print the result as JSON")
}
