package common

import (
	tea "charm.land/bubbletea/v2"
	"github.com/idursun/cypherui/internal/ui/intents"
)

// CommandRunningMsg is sent as soon as a command starts executing.
type CommandRunningMsg struct {
	ID      int
	Command string
	Source  intents.CommandSource
}

// CommandCompletedMsg carries the outcome of a command started with the
// same ID.
type CommandCompletedMsg struct {
	ID      int
	Command string
	Output  string
	Err     error
}

type CloseViewMsg struct{}

func Close() tea.Msg {
	return CloseViewMsg{}
}
