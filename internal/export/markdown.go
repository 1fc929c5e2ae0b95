package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/thoughtchain/internal/cot"
)

var titleCaser = cases.Title(language.English)

// Markdown writes run as a Markdown report.
func Markdown(w io.Writer, run *cot.Run) error {
	doc := NewDocument(run)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s Problem\n\n", titleCaser.String(doc.Category))
	fmt.Fprintf(bw, "> %s\n\n", strings.ReplaceAll(doc.Problem, "\n", "\n> "))

	fmt.Fprintln(bw, "| Field | Value |")
	fmt.Fprintln(bw, "|---|---|")
	fmt.Fprintf(bw, "| Run | `%s` |\n", doc.ID)
	if !doc.CreatedAt.IsZero() {
		fmt.Fprintf(bw, "| Created | %s |\n", doc.CreatedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(bw, "| Model | %s |\n", doc.Model)
	fmt.Fprintf(bw, "| Latency | %d ms |\n", doc.LatencyMs)
	fmt.Fprintf(bw, "| Tokens | %d in / %d out |\n", doc.InputTokens, doc.OutputTokens)
	fmt.Fprintf(bw, "| Segmentation | %s |\n\n", doc.Outcome)

	fmt.Fprintln(bw, "## Steps")
	fmt.Fprintln(bw)
	if len(doc.Steps) == 0 {
		fmt.Fprintln(bw, "_No reasoning steps found._")
		fmt.Fprintln(bw)
	}
	for _, s := range doc.Steps {
		fmt.Fprintf(bw, "### Step %d (%s)\n\n%s\n\n", s.Ordinal, titleCaser.String(string(s.Kind)), s.Content)
	}

	if doc.Summary.Total > 0 {
		fmt.Fprintln(bw, "## Summary")
		fmt.Fprintln(bw)
		for _, kc := range run.Summary().Counts {
			fmt.Fprintf(bw, "- %s: %d\n", titleCaser.String(string(kc.Kind)), kc.Count)
		}
		fmt.Fprintln(bw)
		if doc.Summary.FinalAnswer != "" {
			fmt.Fprintf(bw, "**Final answer:** %s\n\n", doc.Summary.FinalAnswer)
		}
	}

	fmt.Fprintln(bw, "## Raw Response")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "```text")
	fmt.Fprintln(bw, doc.RawResponse)
	fmt.Fprintln(bw, "```")

	return bw.Flush()
}
