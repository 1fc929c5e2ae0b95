package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/thoughtchain/internal/ui/layout"
)

// Screen is one page of the explorer.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string

	// KeyHints are shown in the footer.
	KeyHints() []layout.KeyHint
}

// pushScreenMsg asks the stack to push a screen.
type pushScreenMsg struct {
	screen Screen
}

// popScreenMsg asks the stack to drop the active screen.
type popScreenMsg struct{}

func push(s Screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{screen: s} }
}

func pop() tea.Msg {
	return popScreenMsg{}
}

// stack routes messages to the topmost screen.
type stack struct {
	screens []Screen
}

func newStack(root Screen) *stack {
	return &stack{screens: []Screen{root}}
}

func (s *stack) push(sc Screen) tea.Cmd {
	s.screens = append(s.screens, sc)
	return sc.Init()
}

// pop never removes the root screen.
func (s *stack) pop() {
	if len(s.screens) > 1 {
		s.screens = s.screens[:len(s.screens)-1]
	}
}

func (s *stack) active() Screen {
	return s.screens[len(s.screens)-1]
}

func (s *stack) depth() int {
	return len(s.screens)
}

func (s *stack) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pushScreenMsg:
		return s.push(msg.screen)
	case popScreenMsg:
		s.pop()
		return nil
	}

	updated, cmd := s.active().Update(msg)
	s.screens[len(s.screens)-1] = updated
	return cmd
}
