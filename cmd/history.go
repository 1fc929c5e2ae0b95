package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/render"
	"github.com/abhisek/thoughtchain/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved reasoning runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		category, _ := cmd.Flags().GetString("category")

		q := store.RunQuery{QueryOpts: store.QueryOpts{Limit: limit}}
		if category != "" {
			c, err := reasoning.ParseCategory(category)
			if err != nil {
				return err
			}
			q.Category = string(c)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.RunRepo().ListRuns(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No saved runs found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-19s  %-8s  %5s  %7s  %s\n",
			"ID", "Created", "Category", "Steps", "Ms", "Problem")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, r := range runs {
			fmt.Fprintf(out, "%-36s  %-19s  %-8s  %5d  %7d  %s\n",
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Category,
				r.StepCount,
				r.LatencyMs,
				truncate(strings.ReplaceAll(r.Problem, "\n", " "), 32),
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Render a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := renderOptions(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.RunRepo().GetRun(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("run %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}

		run := cot.RunFromRecord(rec)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %s · %s\n\n", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintln(out, render.Run(run, opts))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete saved runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.RunRepo()
		for _, id := range args {
			err := repo.DeleteRun(cmd.Context(), id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("run %s not found", id)
			}
			if err != nil {
				return fmt.Errorf("delete run %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals per category and step kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		cats, err := s.RunRepo().CategoryTotals(ctx)
		if err != nil {
			return fmt.Errorf("query category totals: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(cats) == 0 {
			fmt.Fprintln(out, "No saved runs yet.")
			return nil
		}

		fmt.Fprintln(out, "Runs by Category")
		fmt.Fprintln(out, strings.Repeat("─", 50))
		fmt.Fprintf(out, "%-10s  %6s  %8s  %10s  %8s\n", "Category", "Runs", "Steps", "Steps/Run", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 50))

		var runs, steps int
		for _, c := range cats {
			fmt.Fprintf(out, "%-10s  %6d  %8d  %10.1f  %8d\n",
				c.Category, c.Runs, c.Steps, float64(c.Steps)/float64(max(c.Runs, 1)), c.AvgLatencyMs)
			runs += c.Runs
			steps += c.Steps
		}
		fmt.Fprintln(out, strings.Repeat("─", 50))
		fmt.Fprintf(out, "%-10s  %6d  %8d\n", "TOTAL", runs, steps)

		kinds, err := s.RunRepo().StepKindTotals(ctx)
		if err != nil {
			return fmt.Errorf("query step kinds: %w", err)
		}
		if len(kinds) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Steps by Kind")
			fmt.Fprintln(out, strings.Repeat("─", 50))
			for _, k := range kinds {
				share := 100 * float64(k.Count) / float64(max(steps, 1))
				fmt.Fprintf(out, "%-12s  %8d  %5.1f%%\n", render.KindLabel(reasoning.StepKind(k.Kind)), k.Count, share)
			}
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyListCmd.Flags().StringP("category", "c", "", "Filter by category")
	addRenderFlags(historyViewCmd)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
