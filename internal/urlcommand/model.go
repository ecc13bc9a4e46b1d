package urlcommand

import (
	tea "charm.land/bubbletea/v2"
	"github.com/idursun/cypherui/internal/logging"
	"github.com/idursun/cypherui/internal/ui/intents"
)

// Model reacts to application start and deep-link changes by emitting the
// intent encoded in the URL. Each input produces at most one intent.
type Model struct {
	cmdchar string
}

func New(cmdchar string) *Model {
	return &Model{cmdchar: cmdchar}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.AppStart:
		return m.handle(msg.URL)
	case intents.URLArgumentsChange:
		return m.handle(msg.URL)
	}
	return nil
}

func (m *Model) handle(rawURL string) tea.Cmd {
	intent, ok := Interpret(rawURL, m.cmdchar)
	if !ok {
		return nil
	}
	if unsupported, isUnsupported := intent.(intents.UnsupportedURLCommand); isUnsupported {
		logging.Logger.Warnw("unsupported url command", "cmd", unsupported.Command)
	} else {
		logging.Logger.Debugw("url command", "url", rawURL, "intent", intent)
	}
	return intents.Invoke(intent)
}
