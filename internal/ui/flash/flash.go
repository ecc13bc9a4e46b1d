package flash

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/cockroachdb/errors"
	"github.com/idursun/cypherui/internal/config"
	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/context"
	"github.com/idursun/cypherui/internal/ui/intents"
)

type expireMessageMsg struct {
	id uint64
}

type flashMessage struct {
	text    string
	command string
	error   error
	id      uint64
}

type pendingResult struct {
	output string
	err    error
}

type Model struct {
	context         *context.MainContext
	messages        []flashMessage
	messageHistory  []flashMessage // completed commands only
	pendingCommands map[int]string
	pendingResults  map[int]pendingResult
	spinner         spinner.Model
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	textStyle       lipgloss.Style
	matchedStyle    lipgloss.Style
	currentId       uint64
}

const (
	HistoryLimit     = 50
	maxBodyLines     = 6
	commandMarkWidth = 3
)

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Intent:
		return m.handleIntent(msg)
	case expireMessageMsg:
		m.removeLiveMessageByID(msg.id)
		return nil
	case common.CommandRunningMsg:
		if result, ok := m.pendingResults[msg.ID]; ok {
			delete(m.pendingResults, msg.ID)
			return m.completeCommand(msg.Command, result.output, result.err)
		}
		m.pendingCommands[msg.ID] = msg.Command
		return m.spinner.Tick
	case common.CommandCompletedMsg:
		command, running := m.pendingCommands[msg.ID]
		if !running {
			if msg.ID == 0 {
				return m.completeCommand(msg.Command, msg.Output, msg.Err)
			}
			// completed before the running message arrived
			m.pendingResults[msg.ID] = pendingResult{output: msg.Output, err: msg.Err}
			return nil
		}
		delete(m.pendingCommands, msg.ID)
		return m.completeCommand(command, msg.Output, msg.Err)
	case spinner.TickMsg:
		if len(m.pendingCommands) > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) handleIntent(intent intents.Intent) tea.Cmd {
	switch intent := intent.(type) {
	case intents.AddMessage:
		id := m.add(intent.Text, intent.Err)
		if intent.Err == nil && !intent.Sticky {
			return m.expire(id)
		}
	case intents.UnsupportedURLCommand:
		m.add("", errors.Newf("Unsupported URL command: %s", intent.Command))
	case intents.DismissOldest:
		m.DeleteOldest()
	case intents.ClearMessages:
		m.messages = m.messages[:0]
	}
	return nil
}

func (m *Model) expire(id uint64) tea.Cmd {
	if id == 0 {
		return nil
	}
	timeout := config.GetExpiringFlashMessageTimeout(m.context.Config)
	if timeout <= 0 {
		return nil
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return expireMessageMsg{id: id}
	})
}

func (m *Model) completeCommand(command string, output string, commandErr error) tea.Cmd {
	id := m.AddWithCommand(output, command, commandErr)
	if commandErr != nil {
		return nil
	}
	return m.expire(id)
}

// View renders live messages, newest last, followed by running commands.
// Every box is right aligned within width.
func (m *Model) View(width int) string {
	maxWidth := max(width-4, 10)
	var boxes []string
	for _, message := range m.messages {
		boxes = append(boxes, m.renderMessage(message, maxWidth))
	}
	for _, id := range slices.Sorted(maps.Keys(m.pendingCommands)) {
		line := m.renderCommandLine(m.pendingCommands[id], nil, true)
		boxes = append(boxes, m.box(line, m.textStyle, maxWidth))
	}
	if len(boxes) == 0 {
		return ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, boxes...))
}

func (m *Model) box(content string, style lipgloss.Style, maxWidth int) string {
	if w := lipgloss.Width(content); w > maxWidth {
		content = lipgloss.NewStyle().Width(maxWidth).Render(content)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		PaddingLeft(1).
		PaddingRight(1).
		BorderForeground(style.GetForeground()).
		Render(content)
}

func (m *Model) renderMessage(message flashMessage, maxWidth int) string {
	style := m.successStyle
	if message.error != nil {
		style = m.errorStyle
	}

	var parts []string
	if message.command != "" {
		parts = append(parts, m.renderCommandLine(message.command, message.error, false))
	}
	body := message.text
	if message.error != nil {
		body = message.error.Error()
	}
	if body != "" {
		parts = append(parts, style.Render(truncateLines(body, maxBodyLines)))
	}
	return m.box(strings.Join(parts, "\n"), style, maxWidth)
}

func truncateLines(text string, limit int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= limit {
		return text
	}
	hidden := len(lines) - limit
	return strings.Join(lines[:limit], "\n") + fmt.Sprintf("\n… %d more lines", hidden)
}

// ColorizeCommand highlights the console command prefix and parameter
// references of a command line.
func ColorizeCommand(command string, cmdchar string, textStyle, matchedStyle lipgloss.Style) string {
	tokens := strings.Split(strings.ReplaceAll(command, "\n", "⏎"), " ")
	var b strings.Builder
	for i, token := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		if (i == 0 && cmdchar != "" && strings.HasPrefix(token, cmdchar)) || strings.HasPrefix(token, "$") {
			b.WriteString(matchedStyle.Render(token))
		} else {
			b.WriteString(textStyle.Render(token))
		}
	}
	return b.String()
}

func (m *Model) renderCommandLine(command string, commandErr error, running bool) string {
	if command == "" {
		return ""
	}
	mark := m.successStyle.Width(commandMarkWidth).Render("✓ ")
	if running {
		mark = m.textStyle.Width(commandMarkWidth).Render(m.spinner.View() + " ")
	} else if commandErr != nil {
		mark = m.errorStyle.Width(commandMarkWidth).Render("✗ ")
	}
	return mark + ColorizeCommand(command, m.context.CmdChar(), m.textStyle, m.matchedStyle)
}

func (m *Model) add(text string, err error) uint64 {
	return m.AddWithCommand(text, "", err)
}

func (m *Model) AddWithCommand(text string, command string, err error) uint64 {
	text = strings.TrimSpace(text)
	if text == "" && err == nil && command == "" {
		return 0
	}

	m.currentId++
	msg := flashMessage{
		id:      m.currentId,
		text:    text,
		command: command,
		error:   err,
	}

	m.messages = append(m.messages, msg)
	if msg.command != "" {
		m.messageHistory = append(m.messageHistory, msg)
		if len(m.messageHistory) > HistoryLimit {
			m.messageHistory = slices.Clone(m.messageHistory[len(m.messageHistory)-HistoryLimit:])
		}
	}
	return msg.id
}

func (m *Model) removeLiveMessageByID(id uint64) {
	m.messages = slices.DeleteFunc(m.messages, func(message flashMessage) bool {
		return message.id == id
	})
}

func (m *Model) Any() bool {
	return len(m.messages) > 0 || len(m.pendingCommands) > 0
}

func (m *Model) LiveMessagesCount() int {
	return len(m.messages)
}

func (m *Model) DeleteOldest() {
	if len(m.messages) == 0 {
		return
	}
	m.messages = m.messages[1:]
}

type CommandHistoryEntry struct {
	ID      uint64
	Command string
	Text    string
	Err     error
}

// CommandHistorySource is what the command history overlay reads from.
type CommandHistorySource interface {
	CommandHistorySnapshot() []CommandHistoryEntry
	DeleteCommandHistoryByID(id uint64)
}

func (m *Model) CommandHistorySnapshot() []CommandHistoryEntry {
	out := make([]CommandHistoryEntry, 0, len(m.messageHistory))
	for _, item := range m.messageHistory {
		out = append(out, CommandHistoryEntry{
			ID:      item.id,
			Command: item.command,
			Text:    item.text,
			Err:     item.error,
		})
	}
	return out
}

func (m *Model) DeleteCommandHistoryByID(id uint64) {
	m.messageHistory = slices.DeleteFunc(m.messageHistory, func(item flashMessage) bool {
		return item.id == id
	})
	m.removeLiveMessageByID(id)
}

func New(context *context.MainContext) *Model {
	return &Model{
		context:         context,
		pendingCommands: make(map[int]string),
		pendingResults:  make(map[int]pendingResult),
		successStyle:    common.DefaultPalette.Get("flash success"),
		errorStyle:      common.DefaultPalette.Get("flash error"),
		textStyle:       common.DefaultPalette.Get("flash text"),
		matchedStyle:    common.DefaultPalette.Get("flash matched"),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}
