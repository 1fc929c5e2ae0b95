package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/examples"
	"github.com/abhisek/thoughtchain/internal/reasoning"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the bundled example problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		list := examples.All()
		if category != "" {
			c, err := reasoning.ParseCategory(category)
			if err != nil {
				return err
			}
			list = examples.ByCategory(c)
		}

		out := cmd.OutOrStdout()
		var shown int
		for _, e := range list {
			if topic != "" && e.Topic != topic {
				continue
			}
			if difficulty != "" && string(e.Difficulty) != strings.ToLower(difficulty) {
				continue
			}
			if shown == 0 {
				fmt.Fprintf(out, "%-9s  %-8s  %-17s  %-6s  %s\n", "ID", "Category", "Topic", "Level", "Question")
				fmt.Fprintln(out, strings.Repeat("─", 100))
			}
			fmt.Fprintf(out, "%-9s  %-8s  %-17s  %-6s  %s\n",
				e.ID, e.Category, e.Topic, e.Difficulty, truncate(e.Question, 56))
			shown++
		}

		if shown == 0 {
			fmt.Fprintln(out, "No examples match.")
		}
		return nil
	},
}

func init() {
	examplesCmd.Flags().StringP("category", "c", "", "Filter by category (math, logic, riddle)")
	examplesCmd.Flags().StringP("topic", "t", "", "Filter by topic (e.g. wordplay, ordering)")
	examplesCmd.Flags().StringP("difficulty", "d", "", "Filter by difficulty (easy, medium)")
}
