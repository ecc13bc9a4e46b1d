package common

import (
	tea "charm.land/bubbletea/v2"
)

type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Sized is implemented by models that lay themselves out to a fixed width.
type Sized interface {
	SetWidth(width int)
}
