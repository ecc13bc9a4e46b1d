package intents

import tea "charm.land/bubbletea/v2"

// Intent represents a high-level action the UI can perform.
// It decouples inputs (keyboard, deep links, startup URL) from the actual capability.
type Intent interface {
	isIntent()
}

func Invoke(intent Intent) tea.Cmd {
	return func() tea.Msg {
		return intent
	}
}
