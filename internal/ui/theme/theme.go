package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/thoughtchain/internal/reasoning"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Step kind colors, shared by cards, the flow line and distribution bars.
var (
	KindCalculationColor = lipgloss.Color("#FFB74D") // Light orange
	KindConclusionColor  = lipgloss.Color("#64B5F6") // Light blue
	KindAssumptionColor  = lipgloss.Color("#BA68C8") // Light purple
	KindAnalysisColor    = lipgloss.Color("#4DB6AC") // Light teal
	KindReasoningColor   = lipgloss.Color("#81C784") // Light green
	KindUnknownColor     = lipgloss.Color("#9E9E9E") // Gray
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Foreground(TextDim).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Answer = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Components
var (
	BarEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// KindColor returns the color used for a step kind.
func KindColor(k reasoning.StepKind) color.Color {
	switch k {
	case reasoning.KindCalculation:
		return KindCalculationColor
	case reasoning.KindConclusion:
		return KindConclusionColor
	case reasoning.KindAssumption:
		return KindAssumptionColor
	case reasoning.KindAnalysis:
		return KindAnalysisColor
	case reasoning.KindReasoning:
		return KindReasoningColor
	}
	return KindUnknownColor
}

// KindIcon returns the glyph shown next to a step kind.
func KindIcon(k reasoning.StepKind) string {
	switch k {
	case reasoning.KindCalculation:
		return "🧮"
	case reasoning.KindConclusion:
		return "✅"
	case reasoning.KindAssumption:
		return "📝"
	case reasoning.KindAnalysis:
		return "🔍"
	case reasoning.KindReasoning:
		return "🤔"
	}
	return "💭"
}

// KindStyle returns a bold foreground style in the kind's color.
func KindStyle(k reasoning.StepKind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(KindColor(k)).Bold(true)
}
