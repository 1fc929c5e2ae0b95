// Package render draws reasoning steps for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/ui/theme"
)

// Mode selects how steps are laid out.
type Mode string

const (
	ModeCards    Mode = "cards"
	ModeCompact  Mode = "compact"
	ModeTimeline Mode = "timeline"
)

// Modes returns all layout modes in display order.
func Modes() []Mode {
	return []Mode{ModeCards, ModeCompact, ModeTimeline}
}

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown view mode %q (want cards, compact or timeline)", s)
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	modes := Modes()
	for i, known := range modes {
		if known == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeCards
}

const emptyMessage = "No reasoning steps found."

var titleCaser = cases.Title(language.English)

// KindLabel returns the display label for a step kind, e.g. "Calculation".
func KindLabel(k reasoning.StepKind) string {
	return titleCaser.String(string(k))
}

// Steps renders steps in the given mode. width <= 0 disables wrapping.
func Steps(steps []reasoning.Step, mode Mode, width int) string {
	switch mode {
	case ModeCompact:
		return Compact(steps, width)
	case ModeTimeline:
		return Timeline(steps, width)
	default:
		return Cards(steps, width)
	}
}

// Cards renders one bordered card per step with its icon and kind label.
func Cards(steps []reasoning.Step, width int) string {
	if len(steps) == 0 {
		return theme.Warning.Render(emptyMessage)
	}

	cards := make([]string, 0, len(steps))
	for _, s := range steps {
		header := fmt.Sprintf("%s Step %d", theme.KindIcon(s.Kind), s.Ordinal)
		kind := theme.KindStyle(s.Kind).Render(KindLabel(s.Kind))

		style := theme.Card.BorderForeground(theme.KindColor(s.Kind))
		if width > 0 {
			style = style.Width(width)
		}

		body := lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render(header),
			theme.Subtitle.Render("Type: ")+kind,
			theme.Body.Render(s.Content),
		)
		cards = append(cards, style.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Compact renders one line per step: icon, ordinal and content.
func Compact(steps []reasoning.Step, width int) string {
	if len(steps) == 0 {
		return theme.Warning.Render(emptyMessage)
	}

	var b strings.Builder
	for i, s := range steps {
		if i > 0 {
			b.WriteByte('\n')
		}
		prefix := fmt.Sprintf("%s %s ", theme.KindIcon(s.Kind), theme.KindStyle(s.Kind).Render(fmt.Sprintf("Step %d:", s.Ordinal)))
		content := s.Content
		if width > 0 {
			content = Truncate(content, width-lipgloss.Width(prefix))
		}
		b.WriteString(prefix + theme.Body.Render(content))
	}
	return b.String()
}

// Timeline renders steps as a vertical timeline joined by connectors.
func Timeline(steps []reasoning.Step, width int) string {
	if len(steps) == 0 {
		return theme.Warning.Render(emptyMessage)
	}

	gutter := len(fmt.Sprint(steps[len(steps)-1].Ordinal))
	connector := theme.Subtitle.Render(strings.Repeat(" ", gutter) + "   │")

	body := theme.Body
	if width > 0 {
		body = body.Width(max(width-gutter-5, 10))
	}

	var lines []string
	for i, s := range steps {
		num := theme.KindStyle(s.Kind).Render(fmt.Sprintf("%*d", gutter, s.Ordinal))
		entry := lipgloss.JoinHorizontal(lipgloss.Top, num, " "+theme.KindIcon(s.Kind)+" ", body.Render(s.Content))
		lines = append(lines, entry)
		if i < len(steps)-1 {
			lines = append(lines, connector)
		}
	}
	return theme.Title.Render("Reasoning Timeline") + "\n" + strings.Join(lines, "\n")
}

// Summary renders step counts per kind and the final answer, if any.
func Summary(steps []reasoning.Step) string {
	sum := reasoning.Summarize(steps)
	if sum.Total == 0 {
		return theme.Warning.Render(emptyMessage)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Reasoning Summary"))
	b.WriteString("\n")

	parts := make([]string, 0, len(sum.Counts))
	for _, kc := range sum.Counts {
		parts = append(parts, fmt.Sprintf("%s %s %d", theme.KindIcon(kc.Kind), theme.KindStyle(kc.Kind).Render(KindLabel(kc.Kind)), kc.Count))
	}
	b.WriteString(strings.Join(parts, "   "))

	if sum.FinalAnswer != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Title.Render("Final Answer"))
		b.WriteString("\n")
		b.WriteString(theme.Answer.Render(sum.FinalAnswer))
	}
	return b.String()
}

// Flow renders a one-line flow of step ordinals colored by kind,
// e.g. "(1) → (2) → (3)".
func Flow(steps []reasoning.Step) string {
	if len(steps) == 0 {
		return theme.Subtitle.Render("No steps to visualize")
	}
	arrow := theme.Subtitle.Render(" → ")
	nodes := make([]string, len(steps))
	for i, s := range steps {
		nodes[i] = theme.KindStyle(s.Kind).Render(fmt.Sprintf("(%d)", s.Ordinal))
	}
	return strings.Join(nodes, arrow)
}

// Distribution renders one horizontal bar per present kind, scaled to
// barWidth cells for the most frequent kind.
func Distribution(steps []reasoning.Step, barWidth int) string {
	sum := reasoning.Summarize(steps)
	if sum.Total == 0 {
		return theme.Subtitle.Render("No steps to visualize")
	}
	if barWidth <= 0 {
		barWidth = 20
	}

	most := 0
	labelWidth := 0
	for _, kc := range sum.Counts {
		most = max(most, kc.Count)
		labelWidth = max(labelWidth, len(kc.Kind))
	}

	lines := make([]string, 0, len(sum.Counts)+1)
	lines = append(lines, theme.Title.Render("Step Type Distribution"))
	for _, kc := range sum.Counts {
		filled := kc.Count * barWidth / most
		if filled == 0 {
			filled = 1
		}
		bar := theme.KindStyle(kc.Kind).Render(strings.Repeat("█", filled)) +
			theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
		label := fmt.Sprintf("%-*s", labelWidth, KindLabel(kc.Kind))
		lines = append(lines, fmt.Sprintf("%s %s %d (%.0f%%)", label, bar, kc.Count, sum.Share(kc.Kind)*100))
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to at most n display cells, ending with "...".
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= 3 {
		return string(runes[:min(n, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
