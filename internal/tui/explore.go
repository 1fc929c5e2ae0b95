package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/examples"
	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/ui/layout"
	"github.com/abhisek/thoughtchain/internal/ui/theme"
)

// solvedMsg carries the result of a background solve.
type solvedMsg struct {
	run *cot.Run
	err error
}

type exploreScreen struct {
	opts     Options
	input    textinput.Model
	catalog  []examples.Example
	example  int // index into catalog, -1 when the input was typed
	category reasoning.Category
	solving  bool
	errMsg   string
}

func newExploreScreen(opts Options) *exploreScreen {
	ti := textinput.New()
	ti.Placeholder = "Type a problem, or press ↓ for an example"
	ti.CharLimit = 500

	return &exploreScreen{
		opts:     opts,
		input:    ti,
		catalog:  examples.All(),
		example:  -1,
		category: reasoning.CategoryGeneral,
	}
}

func (s *exploreScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *exploreScreen) Title() string {
	return "Explore"
}

func (s *exploreScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Solve"},
		{Key: "↑↓", Description: "Examples"},
	}
	if s.opts.History {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "History"})
	}
	return hints
}

func (s *exploreScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case solvedMsg:
		s.solving = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, push(newResultScreen(msg.run, s.opts.Mode))

	case tea.KeyPressMsg:
		if s.solving {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "down", "ctrl+n":
			s.cycle(1)
			return s, nil
		case "up", "ctrl+p":
			s.cycle(-1)
			return s, nil
		case "ctrl+r":
			if s.opts.History {
				return s, push(newHistoryScreen(s.opts))
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.example = -1
		s.errMsg = ""
		s.category = s.opts.Service.Classify(s.input.Value())
	}
	return s, cmd
}

func (s *exploreScreen) cycle(delta int) {
	n := len(s.catalog)
	if n == 0 {
		return
	}
	if s.example < 0 && delta < 0 {
		s.example = n - 1
	} else {
		s.example = ((s.example+delta)%n + n) % n
	}
	s.input.SetValue(s.catalog[s.example].Question)
	s.input.CursorEnd()
	s.category = s.opts.Service.Classify(s.input.Value())
	s.errMsg = ""
}

func (s *exploreScreen) submit() tea.Cmd {
	problem := strings.TrimSpace(s.input.Value())
	if problem == "" {
		s.errMsg = "Type a problem first."
		return nil
	}
	s.solving = true
	s.errMsg = ""

	svc := s.opts.Service
	in := cot.SolveInput{
		Problem:     problem,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	}
	return func() tea.Msg {
		run, err := svc.Solve(context.Background(), in)
		return solvedMsg{run: run, err: err}
	}
}

func (s *exploreScreen) View(width, height int) string {
	s.input.SetWidth(max(width-8, 10))

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(theme.Title.Render("Problem"))
	b.WriteString("\n\n  ")
	b.WriteString(s.input.View())
	b.WriteString("\n\n  ")
	b.WriteString(theme.Subtitle.Render("category: " + string(s.category)))

	if s.example >= 0 {
		e := s.catalog[s.example]
		b.WriteString(theme.Hint.Render(fmt.Sprintf("   example %d/%d · %s · %s",
			s.example+1, len(s.catalog), e.Topic, e.Difficulty)))
	}

	b.WriteString("\n\n  ")
	switch {
	case s.solving:
		b.WriteString(theme.Warning.Render("Thinking..."))
	case s.errMsg != "":
		b.WriteString(theme.Failure.Render(s.errMsg))
	}
	return b.String()
}
