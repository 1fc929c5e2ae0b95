package tui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/render"
	"github.com/abhisek/thoughtchain/internal/store"
	"github.com/abhisek/thoughtchain/internal/ui/layout"
	"github.com/abhisek/thoughtchain/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	runs []*cot.Run
	err  error
}

type runLoadedMsg struct {
	run *cot.Run
	err error
}

// historyScreen lists saved runs, newest first.
type historyScreen struct {
	opts     Options
	runs     []*cot.Run
	selected int
	loaded   bool
	errMsg   string
}

func newHistoryScreen(opts Options) *historyScreen {
	return &historyScreen{opts: opts}
}

func (s *historyScreen) Init() tea.Cmd {
	svc := s.opts.Service
	return func() tea.Msg {
		runs, err := svc.Recent(context.Background(), store.RunQuery{
			QueryOpts: store.QueryOpts{Limit: historyLimit},
		})
		return historyLoadedMsg{runs: runs, err: err}
	}
}

func (s *historyScreen) Title() string {
	return "History"
}

func (s *historyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
	}
}

func (s *historyScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.runs = msg.runs
		return s, nil

	case runLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		return s, push(newResultScreen(msg.run, s.opts.Mode))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = min(s.selected+1, max(len(s.runs)-1, 0))
		case "enter":
			if s.selected < len(s.runs) {
				return s, s.open(s.runs[s.selected].ID)
			}
		}
	}
	return s, nil
}

func (s *historyScreen) open(id string) tea.Cmd {
	svc := s.opts.Service
	return func() tea.Msg {
		run, err := svc.Lookup(context.Background(), id)
		return runLoadedMsg{run: run, err: err}
	}
}

func (s *historyScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.runs) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo saved runs yet. Solve a problem first.")
	}

	// Scroll so the selection stays visible.
	rows := max(height-1, 1)
	first := max(s.selected-rows+1, 0)

	var b strings.Builder
	b.WriteString("\n")
	for i := first; i < len(s.runs) && i < first+rows; i++ {
		run := s.runs[i]
		prefix := "  "
		style := theme.Body
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-8s %2d steps  %s",
			prefix,
			run.CreatedAt.Local().Format("Jan 02 15:04"),
			run.Category,
			run.StepCount(),
			render.Truncate(run.Problem, max(width-40, 10)),
		)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
