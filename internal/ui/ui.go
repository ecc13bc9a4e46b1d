package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/cypherui/internal/commands"
	"github.com/idursun/cypherui/internal/completion"
	"github.com/idursun/cypherui/internal/config"
	"github.com/idursun/cypherui/internal/cypher"
	"github.com/idursun/cypherui/internal/logging"
	"github.com/idursun/cypherui/internal/ui/actions"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/commandhistory"
	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/context"
	"github.com/idursun/cypherui/internal/ui/dispatch"
	"github.com/idursun/cypherui/internal/ui/editor"
	"github.com/idursun/cypherui/internal/ui/flash"
	"github.com/idursun/cypherui/internal/ui/helpkeys"
	"github.com/idursun/cypherui/internal/ui/helppage"
	"github.com/idursun/cypherui/internal/ui/intents"
	"github.com/idursun/cypherui/internal/ui/status"
	"github.com/idursun/cypherui/internal/urlcommand"
)

const scopeUi keybindings.Scope = actions.OwnerUi

const defaultSchemaTimeout = 10 * time.Second

type Model struct {
	context      *context.MainContext
	editor       *editor.Model
	flash        *flash.Model
	status       *status.Model
	urlCommands  *urlcommand.Model
	executor     *commands.Executor
	source       *completion.Source
	stacked      common.StackedModel
	resolver     *dispatch.Resolver
	sequenceHelp []helpkeys.Entry
	result       result
	titleStyle   lipgloss.Style
	resultStyle  lipgloss.Style
	width        int
	height       int
}

// result is what the area above the editor shows: the last finished command.
type result struct {
	command string
	output  string
	err     error
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.editor.Init(),
		intents.Invoke(intents.AppStart{URL: m.context.StartURL}),
		m.loadSchema(),
	)
}

func (m *Model) loadSchema() tea.Cmd {
	timeout := config.GetQueryTimeout(m.context.Config)
	if timeout <= 0 {
		timeout = defaultSchemaTimeout
	}
	return completion.LoadSchema(m.context.Runner, timeout)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case common.CloseViewMsg:
		m.stacked = nil
		return nil
	case tea.KeyMsg:
		resolved := m.resolver.ResolveKey(msg, m.dispatchScopes())
		if resolved.Pending {
			m.sequenceHelp = helpkeys.BuildFromContinuations(resolved.Continuations)
			return nil
		}
		m.sequenceHelp = nil
		if resolved.Intent != nil {
			return m.routeIntent(resolved.Owner, resolved.Intent)
		}
		if resolved.Consumed {
			return nil
		}
		return m.handleUnmatched(msg)
	case intents.Intent:
		return m.handleIntent(msg)
	case common.CommandRunningMsg:
		return m.flash.Update(msg)
	case common.CommandCompletedMsg:
		return m.commandCompleted(msg)
	case completion.SchemaLoadedMsg:
		if msg.Err != nil {
			logging.Logger.Warnw("schema not loaded", "error", msg.Err)
			return nil
		}
		m.source.SetSchema(msg.Schema)
		return nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width)
		if sized, ok := m.stacked.(common.Sized); ok {
			sized.SetWidth(msg.Width)
		}
		return nil
	}

	cmds := []tea.Cmd{m.flash.Update(msg), m.editor.Update(msg)}
	if m.stacked != nil {
		cmds = append(cmds, m.stacked.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) commandCompleted(msg common.CommandCompletedMsg) tea.Cmd {
	cmds := []tea.Cmd{m.flash.Update(msg)}
	m.result = result{command: msg.Command, output: msg.Output, err: msg.Err}
	if m.executor.IsConsoleCommand(msg.Command) {
		m.source.SetParameters(paramNames(m.context.Params.All()))
	} else if msg.Err == nil && cypher.IsWriteQuery(msg.Command) {
		cmds = append(cmds, m.loadSchema())
	}
	return tea.Batch(cmds...)
}

func paramNames(values map[string]any) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	return names
}

func (m *Model) handleIntent(intent intents.Intent) tea.Cmd {
	switch intent := intent.(type) {
	case intents.AppStart, intents.URLArgumentsChange:
		return m.urlCommands.Update(intent)
	case intents.ExecuteCommand:
		return m.executor.Execute(intent.Command, intent.Source)
	case intents.SetContent:
		m.stacked = nil
		return m.editor.Update(intent)
	case intents.UnsupportedURLCommand, intents.AddMessage, intents.DismissOldest, intents.ClearMessages:
		return m.flash.Update(intent)
	case intents.CommandHistoryToggle:
		if m.stacked != nil {
			m.stacked = nil
			return nil
		}
		history := commandhistory.New(m.context, m.flash)
		history.SetWidth(m.width)
		m.stacked = history
		return m.stacked.Init()
	case intents.HelpToggle:
		if m.stacked != nil && m.stacked.StackedActionOwner() == actions.OwnerHelp {
			m.stacked = nil
			return nil
		}
		help := helppage.New(m.context)
		help.SetWidth(m.width)
		m.stacked = help
		return nil
	case intents.Quit:
		return tea.Quit
	case intents.Cancel:
		switch {
		case m.stacked != nil:
			m.stacked = nil
		case m.editor.Completing():
			return m.editor.Update(intent)
		case m.flash.Any():
			m.flash.DeleteOldest()
		}
		return nil
	case intents.CommandHistoryNavigate, intents.CommandHistoryApply,
		intents.CommandHistoryDeleteSelected, intents.CommandHistoryClose, intents.HelpClose:
		if m.stacked != nil {
			return m.stacked.Update(intent)
		}
		return nil
	default:
		return m.editor.Update(intent)
	}
}

func (m *Model) routeIntent(owner string, intent intents.Intent) tea.Cmd {
	switch owner {
	case actions.OwnerCommandHistory, actions.OwnerHelp:
		if m.stacked != nil {
			return m.stacked.Update(intent)
		}
	case actions.OwnerEditor, actions.OwnerCompletion:
		return m.editor.Update(intent)
	}
	return m.handleIntent(intent)
}

func (m *Model) handleUnmatched(msg tea.KeyMsg) tea.Cmd {
	if m.stacked != nil {
		return m.stacked.Update(msg)
	}
	return m.editor.Update(msg)
}

// dispatchScopes is the scope chain keys are resolved against, innermost
// first. The ui scope is always last.
func (m *Model) dispatchScopes() []keybindings.Scope {
	var scopes []keybindings.Scope
	if m.stacked != nil {
		scopes = []keybindings.Scope{keybindings.Scope(m.stacked.StackedActionOwner())}
	} else {
		scopes = m.editor.Scopes()
	}
	return append(scopes, scopeUi)
}

func (m *Model) statusMode() string {
	switch {
	case m.stacked != nil && m.stacked.StackedActionOwner() == actions.OwnerHelp:
		return "help"
	case m.stacked != nil:
		return "history"
	case m.editor.Completing():
		return "complete"
	default:
		return "editor"
	}
}

func (m *Model) updateStatus() {
	m.status.SetMode(m.statusMode())
	if m.sequenceHelp != nil {
		m.status.SetHelp(m.sequenceHelp)
		return
	}
	m.status.SetHelp(helpkeys.BuildFromBindings(m.dispatchScopes(), m.context.Config.Bindings))
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	m.updateStatus()

	statusView := m.status.View(m.width)
	editorView := m.editor.View()
	flashView := m.flash.View(m.width)

	used := lipgloss.Height(statusView) + lipgloss.Height(editorView)
	if flashView != "" {
		used += lipgloss.Height(flashView)
	}
	available := max(m.height-used, 0)

	var main string
	if m.stacked != nil {
		main = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.stacked.View())
		main = bottomLines(main, available)
	} else {
		main = topLines(m.renderResult(), available)
	}
	main = lipgloss.NewStyle().Height(available).Render(main)

	parts := []string{main}
	if flashView != "" {
		parts = append(parts, flashView)
	}
	parts = append(parts, editorView, statusView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderResult() string {
	if m.result.command == "" {
		return ""
	}
	title := m.titleStyle.Render("$ " + strings.ReplaceAll(m.result.command, "\n", " "))
	body := m.result.output
	if m.result.err != nil {
		body = m.result.err.Error()
	}
	return title + "\n" + m.resultStyle.Render(body)
}

func topLines(text string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

func bottomLines(text string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func NewUI(c *context.MainContext) *Model {
	source := completion.NewSource(c.CmdChar())
	source.SetParameters(paramNames(c.Params.All()))
	ui := &Model{
		context:     c,
		source:      source,
		editor:      editor.New(c, source),
		flash:       flash.New(c),
		status:      status.New(c),
		urlCommands: urlcommand.New(c.CmdChar()),
		executor:    commands.NewExecutor(c),
		titleStyle:  common.DefaultPalette.Get("results title"),
		resultStyle: common.DefaultPalette.Get("results"),
	}
	ui.initResolver()
	return ui
}

func (m *Model) initResolver() {
	bindings := config.BindingsToRuntime(m.context.Config.Bindings)
	dispatcher, err := dispatch.NewDispatcher(bindings)
	if err != nil {
		logging.Logger.Errorw("invalid key bindings", "error", err)
		return
	}
	m.resolver = dispatch.NewResolver(dispatcher)
}

var _ tea.Model = (*wrapper)(nil)

type wrapper struct {
	ui *Model
}

func (w *wrapper) Init() tea.Cmd {
	return w.ui.Init()
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return w, w.ui.Update(msg)
}

func (w *wrapper) View() tea.View {
	view := tea.NewView(w.ui.View())
	view.AltScreen = true
	view.WindowTitle = "cypherui - " + w.ui.context.Config.Neo4j.URI
	return view
}

func New(c *context.MainContext) tea.Model {
	return &wrapper{ui: NewUI(c)}
}
