package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/render"
	"github.com/abhisek/thoughtchain/internal/ui/layout"
)

// resultScreen shows one run with a switchable step layout.
type resultScreen struct {
	run        *cot.Run
	mode       render.Mode
	showRaw    bool
	showCharts bool
	offset     int
	lastHeight int
}

func newResultScreen(run *cot.Run, mode render.Mode) *resultScreen {
	return &resultScreen{run: run, mode: mode, showCharts: true}
}

func (s *resultScreen) Init() tea.Cmd { return nil }

func (s *resultScreen) Title() string {
	return "Reasoning · " + string(s.mode)
}

func (s *resultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "View"},
		{Key: "r", Description: "Raw"},
		{Key: "c", Description: "Charts"},
		{Key: "↑↓", Description: "Scroll"},
	}
}

func (s *resultScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	page := max(s.lastHeight-1, 1)
	switch kmsg.String() {
	case "tab":
		s.mode = s.mode.Next()
		s.offset = 0
	case "r":
		s.showRaw = !s.showRaw
	case "c":
		s.showCharts = !s.showCharts
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(s.offset-page, 0)
	case "pgdown", "space":
		s.offset += page
	case "home", "g":
		s.offset = 0
	}
	return s, nil
}

func (s *resultScreen) View(width, height int) string {
	s.lastHeight = height

	out := render.Run(s.run, render.Options{
		Mode:        s.mode,
		Width:       max(width-4, 20),
		ShowRaw:     s.showRaw,
		ShowSummary: true,
		ShowCharts:  s.showCharts,
	})

	lines := strings.Split(out, "\n")
	// Keep the last screenful reachable but no further.
	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}
