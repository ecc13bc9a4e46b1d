package editor

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/cypherui/internal/completion"
	"github.com/idursun/cypherui/internal/ui/actions"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/context"
	"github.com/idursun/cypherui/internal/ui/intents"
)

var _ common.Model = (*Model)(nil)

const (
	historyLimit    = 100
	completionDelay = 120 * time.Millisecond
)

// refreshCompletionsMsg fires completionDelay after a keystroke. Only the
// one carrying the latest seq is acted on, so a burst of typing refreshes
// the popup once.
type refreshCompletionsMsg struct {
	seq  int
	text string
}

type Model struct {
	context      *context.MainContext
	input        textarea.Model
	source       *completion.Source
	completions  []completion.Item
	selected     int
	completing   bool
	history      []string
	historyIndex int
	draft        string
	refreshSeq   int
	width        int
	borderStyle  lipgloss.Style
	itemStyle    lipgloss.Style
	selectStyle  lipgloss.Style
	kindStyle    lipgloss.Style
	postfixStyle lipgloss.Style
}

func New(ctx *context.MainContext, source *completion.Source) *Model {
	input := textarea.New()
	input.Prompt = ""
	input.Placeholder = fmt.Sprintf("Cypher, or %splay intro", ctx.CmdChar())
	input.ShowLineNumbers = true
	input.CharLimit = 0
	input.SetHeight(max(ctx.Config.Editor.Height, 1))
	input.Focus()

	return &Model{
		context:      ctx,
		input:        input,
		source:       source,
		width:        80,
		borderStyle:  common.DefaultPalette.GetBorder("editor border", lipgloss.RoundedBorder()),
		itemStyle:    common.DefaultPalette.Get("completion"),
		selectStyle:  common.DefaultPalette.Get("completion selected"),
		kindStyle:    common.DefaultPalette.Get("completion kind"),
		postfixStyle: common.DefaultPalette.Get("completion postfix"),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Value() string {
	return m.input.Value()
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.input.SetWidth(max(width-2, 10))
}

// Scopes lists the binding scopes of the editor, innermost first.
func (m *Model) Scopes() []keybindings.Scope {
	if m.completing {
		return []keybindings.Scope{actions.OwnerCompletion, actions.OwnerEditor}
	}
	return []keybindings.Scope{actions.OwnerEditor}
}

func (m *Model) Completing() bool {
	return m.completing
}

func (m *Model) Completions() []completion.Item {
	return m.completions
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Intent:
		return m.handleIntent(msg)
	case refreshCompletionsMsg:
		if m.completing && msg.seq == m.refreshSeq && msg.text == m.input.Value() {
			m.complete()
		}
		return nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if !m.completing {
			return cmd
		}
		return tea.Batch(cmd, m.scheduleRefresh())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) scheduleRefresh() tea.Cmd {
	m.refreshSeq++
	msg := refreshCompletionsMsg{seq: m.refreshSeq, text: m.input.Value()}
	return tea.Tick(completionDelay, func(time.Time) tea.Msg {
		return msg
	})
}

func (m *Model) handleIntent(intent intents.Intent) tea.Cmd {
	switch intent := intent.(type) {
	case intents.SetContent:
		m.setValue(intent.Message)
	case intents.EditorExecute:
		return m.execute()
	case intents.EditorClear:
		m.setValue("")
	case intents.EditorHistoryNavigate:
		m.navigateHistory(intent.Delta)
	case intents.CompletionCycle:
		if !m.completing {
			m.startCompletion()
			return nil
		}
		delta := 1
		if intent.Reverse {
			delta = -1
		}
		m.moveSelection(delta)
	case intents.CompletionMove:
		m.moveSelection(intent.Delta)
	case intents.CompletionApply:
		if m.completing && len(m.completions) > 0 {
			m.setValue(completion.Apply(m.input.Value(), m.completions[m.selected]))
		}
		m.closeCompletion()
	case intents.Cancel:
		m.closeCompletion()
	}
	return nil
}

func (m *Model) setValue(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.closeCompletion()
}

func (m *Model) execute() tea.Cmd {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		return nil
	}
	m.pushHistory(value)
	m.setValue("")
	return intents.Invoke(intents.ExecuteCommand{Command: value, Source: intents.SourceEditor})
}

func (m *Model) pushHistory(value string) {
	if n := len(m.history); n == 0 || m.history[n-1] != value {
		m.history = append(m.history, value)
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
	}
	m.historyIndex = len(m.history)
	m.draft = ""
}

// navigateHistory moves through executed content. The position past the
// newest entry holds whatever was being typed before navigation started.
func (m *Model) navigateHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	if m.historyIndex == len(m.history) {
		m.draft = m.input.Value()
	}
	m.historyIndex = min(len(m.history), max(0, m.historyIndex+delta))
	if m.historyIndex == len(m.history) {
		m.setValue(m.draft)
		return
	}
	m.setValue(m.history[m.historyIndex])
}

func (m *Model) startCompletion() {
	items := m.source.Complete(m.input.Value())
	switch len(items) {
	case 0:
		return
	case 1:
		m.setValue(completion.Apply(m.input.Value(), items[0]))
		return
	}
	m.completing = true
	m.completions = items
	m.selected = 0
}

func (m *Model) complete() {
	m.completions = m.source.Complete(m.input.Value())
	if len(m.completions) == 0 {
		m.closeCompletion()
		return
	}
	m.selected = min(m.selected, len(m.completions)-1)
}

func (m *Model) closeCompletion() {
	m.completing = false
	m.completions = nil
	m.selected = 0
}

func (m *Model) moveSelection(delta int) {
	if len(m.completions) == 0 {
		return
	}
	n := len(m.completions)
	m.selected = ((m.selected+delta)%n + n) % n
}

func (m *Model) View() string {
	editor := m.borderStyle.Render(m.input.View())
	if !m.completing || len(m.completions) == 0 {
		return editor
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderCompletions(), editor)
}

func (m *Model) renderCompletions() string {
	limit := m.context.Config.Editor.MaxCompletions
	if limit <= 0 {
		limit = 8
	}
	start := 0
	if m.selected >= limit {
		start = m.selected - limit + 1
	}
	end := min(len(m.completions), start+limit)

	var lines []string
	for i := start; i < end; i++ {
		item := m.completions[i]
		style := m.itemStyle
		if i == m.selected {
			style = m.selectStyle
		}
		line := style.Render(item.View) + " " + m.kindStyle.Render(string(item.Type))
		if item.Postfix != "" {
			line += " " + m.postfixStyle.Render(item.Postfix)
		}
		lines = append(lines, line)
	}
	if hidden := len(m.completions) - end; hidden > 0 {
		lines = append(lines, m.postfixStyle.Render(fmt.Sprintf("+%d more", hidden)))
	}
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Render(strings.Join(lines, "\n"))
}
