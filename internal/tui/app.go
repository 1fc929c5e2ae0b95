// Package tui is the interactive reasoning explorer.
package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/render"
	"github.com/abhisek/thoughtchain/internal/ui/layout"
)

// Options configures the explorer.
type Options struct {
	Service *cot.Service

	// Model names the active LLM in the header.
	Model string

	// Mode is the initial step layout.
	Mode render.Mode

	// MaxTokens and Temperature are passed to every solve; zero values
	// use the service defaults.
	MaxTokens   int
	Temperature float64

	// History enables the saved-runs screen.
	History bool
}

// Model is the root Bubble Tea model.
type Model struct {
	opts   Options
	stack  *stack
	width  int
	height int
}

// New creates the explorer with the problem input as its first screen.
func New(opts Options) Model {
	if opts.Mode == "" {
		opts.Mode = render.ModeCards
	}
	return Model{
		opts:  opts,
		stack: newStack(newExploreScreen(opts)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.stack.active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.stack.depth() > 1 {
				return m, pop
			}
			return m, tea.Quit
		}
	}

	return m, m.stack.update(msg)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.stack.active()
	header := layout.RenderHeader(active.Title(), m.opts.Model, m.width)

	hints := active.KeyHints()
	if m.stack.depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := active.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the explorer and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Service == nil {
		return fmt.Errorf("tui: a reasoning service is required")
	}
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run explorer: %w", err)
	}
	return nil
}
