package commandhistory

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/cypherui/internal/ui/actions"
	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/context"
	"github.com/idursun/cypherui/internal/ui/flash"
	"github.com/idursun/cypherui/internal/ui/intents"
)

var _ common.StackedModel = (*Model)(nil)

const (
	historyWindowSize = 10
	commandMarkWidth  = 3
)

type Model struct {
	context       *context.MainContext
	source        flash.CommandHistorySource
	items         []flash.CommandHistoryEntry
	selectedIndex int
	windowStart   int
	width         int
	successStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	textStyle     lipgloss.Style
	matchedStyle  lipgloss.Style
}

func New(context *context.MainContext, source flash.CommandHistorySource) *Model {
	m := &Model{
		context:      context,
		source:       source,
		width:        80,
		successStyle: common.DefaultPalette.Get("flash success"),
		errorStyle:   common.DefaultPalette.Get("flash error"),
		textStyle:    common.DefaultPalette.Get("flash text"),
		matchedStyle: common.DefaultPalette.Get("flash matched"),
	}
	if source != nil {
		m.items = source.CommandHistorySnapshot()
	}
	if len(m.items) > 0 {
		m.selectedIndex = len(m.items) - 1
		m.windowStart = max(0, len(m.items)-historyWindowSize)
	}
	m.clampViewport()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) StackedActionOwner() string {
	return actions.OwnerCommandHistory
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Intent:
		switch intent := msg.(type) {
		case intents.CommandHistoryNavigate:
			if len(m.items) == 0 {
				return nil
			}
			// newest is drawn at the bottom, so a positive delta moves towards older entries
			m.selectedIndex = min(len(m.items)-1, max(0, m.selectedIndex-intent.Delta))
			m.clampViewport()
		case intents.CommandHistoryDeleteSelected:
			m.deleteSelected()
		case intents.CommandHistoryApply:
			entry, ok := m.Selected()
			if !ok {
				return common.Close
			}
			return tea.Batch(intents.Invoke(intents.SetContent{Message: entry.Command}), common.Close)
		case intents.CommandHistoryClose, intents.CommandHistoryToggle, intents.Cancel:
			return common.Close
		}
	case common.CloseViewMsg:
		return common.Close
	}
	return nil
}

func (m *Model) Selected() (flash.CommandHistoryEntry, bool) {
	if len(m.items) == 0 {
		return flash.CommandHistoryEntry{}, false
	}
	return m.items[m.selectedIndex], true
}

func (m *Model) View() string {
	if len(m.items) == 0 {
		return m.textStyle.Render("no commands executed yet")
	}
	maxWidth := max(m.width-4, 10)
	var entries []string
	for _, item := range m.window() {
		entries = append(entries, m.renderEntry(item.entry, maxWidth, item.selected))
	}
	return lipgloss.JoinVertical(lipgloss.Right, entries...)
}

type historyItem struct {
	entry    flash.CommandHistoryEntry
	selected bool
}

// window returns the visible slice of history, oldest first.
func (m *Model) window() []historyItem {
	if len(m.items) == 0 {
		return nil
	}
	m.clampViewport()
	end := min(len(m.items), m.windowStart+historyWindowSize)
	items := make([]historyItem, 0, end-m.windowStart)
	for i := m.windowStart; i < end; i++ {
		items = append(items, historyItem{entry: m.items[i], selected: i == m.selectedIndex})
	}
	return items
}

func (m *Model) clampViewport() {
	if len(m.items) == 0 {
		m.selectedIndex = 0
		m.windowStart = 0
		return
	}
	m.selectedIndex = min(len(m.items)-1, max(0, m.selectedIndex))
	maxStart := max(0, len(m.items)-historyWindowSize)
	m.windowStart = min(maxStart, max(0, m.windowStart))
	if m.selectedIndex < m.windowStart {
		m.windowStart = m.selectedIndex
	}
	if m.selectedIndex >= m.windowStart+historyWindowSize {
		m.windowStart = m.selectedIndex - historyWindowSize + 1
	}
}

func (m *Model) deleteSelected() {
	if len(m.items) == 0 {
		return
	}
	selected := m.selectedIndex
	removed := m.items[selected]
	m.items = append(m.items[:selected], m.items[selected+1:]...)
	if m.source != nil {
		m.source.DeleteCommandHistoryByID(removed.ID)
	}
	m.selectedIndex = selected
	m.clampViewport()
}

func (m *Model) renderEntry(entry flash.CommandHistoryEntry, maxWidth int, selected bool) string {
	style := lipgloss.NewStyle()
	parts := []string{m.renderCommandLine(entry.Command, entry.Err)}
	if selected {
		style = m.successStyle
		if entry.Err != nil {
			style = m.errorStyle
			parts = append(parts, m.errorStyle.Render(entry.Err.Error()))
		} else if entry.Text != "" {
			parts = append(parts, style.Render(entry.Text))
		}
	}

	content := strings.Join(parts, "\n")
	if lipgloss.Width(content) > maxWidth {
		content = lipgloss.NewStyle().Width(maxWidth).Render(content)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		PaddingLeft(1).
		PaddingRight(1).
		BorderForeground(style.GetForeground()).
		Render(content)
}

func (m *Model) renderCommandLine(command string, commandErr error) string {
	mark := m.successStyle.Width(commandMarkWidth).Render("✓ ")
	if commandErr != nil {
		mark = m.errorStyle.Width(commandMarkWidth).Render("✗ ")
	}
	return mark + flash.ColorizeCommand(command, m.context.CmdChar(), m.textStyle, m.matchedStyle)
}
