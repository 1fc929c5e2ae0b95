package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/ui/theme"
)

// Options controls what Run draws besides the steps.
type Options struct {
	Mode        Mode
	Width       int
	ShowRaw     bool
	ShowSummary bool
	ShowCharts  bool
}

// Header renders the problem, its category and generation metadata.
func Header(run *cot.Run) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Problem"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(run.Problem))
	b.WriteString("\n")

	meta := []string{
		"category: " + string(run.Category),
		"model: " + orDash(run.Model),
		"latency: " + run.Latency.Round(time.Millisecond).String(),
		fmt.Sprintf("tokens: %d in / %d out", run.InputTokens, run.OutputTokens),
	}
	b.WriteString(theme.Subtitle.Render(strings.Join(meta, " · ")))

	if run.Truncated() {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("Response stopped at the token limit; the last step may be incomplete."))
	}
	switch run.Transcript.Outcome {
	case reasoning.OutcomeRecovered:
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("Could not split the response into steps: " + run.Transcript.Failure))
	case reasoning.OutcomeSentences:
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("No step markers found; split into sentences."))
	}
	return b.String()
}

// Run renders a complete run.
func Run(run *cot.Run, opts Options) string {
	sections := []string{Header(run)}

	if opts.ShowRaw {
		sections = append(sections, theme.Title.Render("Raw Response")+"\n"+theme.Hint.Render(run.Raw))
	}

	sections = append(sections, Steps(run.Steps(), opts.Mode, opts.Width))

	if opts.ShowSummary && run.Transcript.Len() > 1 {
		sections = append(sections, Summary(run.Steps()))
	}
	if opts.ShowCharts {
		sections = append(sections, Flow(run.Steps()), Distribution(run.Steps(), 20))
	}

	return strings.Join(sections, "\n\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
