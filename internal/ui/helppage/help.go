// Package helppage renders the key binding overview.
package helppage

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/cypherui/internal/ui/actions"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/context"
	"github.com/idursun/cypherui/internal/ui/helpkeys"
	"github.com/idursun/cypherui/internal/ui/intents"
)

var _ common.StackedModel = (*Model)(nil)

type Model struct {
	width        int
	context      *context.MainContext
	styles       styles
	searchActive bool
	searchQuery  string
}

type styles struct {
	border   lipgloss.Style
	title    lipgloss.Style
	text     lipgloss.Style
	shortcut lipgloss.Style
	dimmed   lipgloss.Style
}

type helpEntry struct {
	view   string
	search string
}

func newHelpEntry(view string, parts ...string) helpEntry {
	var normalized []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	var search string
	if len(normalized) > 0 {
		search = strings.ToLower(strings.Join(normalized, " "))
	}
	return helpEntry{
		view:   view,
		search: search,
	}
}

func (e helpEntry) matches(query string) bool {
	if query == "" || e.search == "" {
		return false
	}
	return strings.Contains(e.search, query)
}

func (h *Model) SetWidth(w int) {
	h.width = w
}

func (h *Model) StackedActionOwner() string {
	return actions.OwnerHelp
}

func (h *Model) Init() tea.Cmd {
	return nil
}

func (h *Model) Searching() bool {
	return h.searchActive
}

func (h *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.HelpClose:
		if h.searchActive {
			h.searchActive = false
			h.searchQuery = ""
			return nil
		}
		return common.Close
	case tea.KeyPressMsg:
		if !h.searchActive {
			if msg.Text == "/" {
				h.searchActive = true
				h.searchQuery = ""
			}
			return nil
		}
		switch msg.Code {
		case tea.KeyBackspace, tea.KeyDelete:
			if len(h.searchQuery) > 0 {
				_, size := utf8.DecodeLastRuneInString(h.searchQuery)
				h.searchQuery = h.searchQuery[:len(h.searchQuery)-size]
			}
		default:
			h.searchQuery += msg.Text
		}
	}
	return nil
}

func (h *Model) keyEntry(key string, desc string) helpEntry {
	view := h.printKey(key, desc)
	return newHelpEntry(view, key, desc)
}

func (h *Model) titleEntry(header string) helpEntry {
	return newHelpEntry(h.printTitle(header), header)
}

func (h *Model) blankEntry() helpEntry {
	return newHelpEntry("")
}

func (h *Model) printKey(key string, desc string) string {
	keyAligned := fmt.Sprintf("%12s", key)
	return lipgloss.JoinHorizontal(lipgloss.Top, h.styles.shortcut.Render(keyAligned), h.styles.dimmed.Render(desc))
}

func (h *Model) printTitle(header string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, fmt.Sprintf("%12s", ""), h.styles.title.Render(header))
}

func (h *Model) View() string {
	left, middle, right := h.defaultColumns()
	leftStrings := entriesToStrings(left)
	middleStrings := entriesToStrings(middle)
	rightStrings := entriesToStrings(right)

	maxHeight := max(len(leftStrings), len(rightStrings), len(middleStrings))

	leftWidth := 1 + lipgloss.Width(strings.Join(leftStrings, "\n"))
	middleWidth := 1 + lipgloss.Width(strings.Join(middleStrings, "\n"))
	rightWidth := 1 + lipgloss.Width(strings.Join(rightStrings, "\n"))

	if h.searchActive {
		// search results replace the left column
		leftStrings = h.searchColumn(maxHeight, left, middle, right)
		leftWidth = max(leftWidth, middleWidth+rightWidth)
		content := h.renderColumn(leftWidth, maxHeight, leftStrings...)
		return h.styles.border.Render(content)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		h.renderColumn(leftWidth, maxHeight, leftStrings...),
		h.renderColumn(middleWidth, maxHeight, middleStrings...),
		h.renderColumn(rightWidth, maxHeight, rightStrings...),
	)
	return h.styles.border.Render(content)
}

func (h *Model) scopeEntries(title string, scope keybindings.Scope) []helpEntry {
	entries := []helpEntry{h.titleEntry(title)}
	for _, entry := range helpkeys.BuildFromBindings([]keybindings.Scope{scope}, h.context.Config.Bindings) {
		entries = append(entries, h.keyEntry(entry.Label, entry.Desc))
	}
	return entries
}

func (h *Model) consoleEntries() []helpEntry {
	cmdchar := h.context.CmdChar()
	entries := []helpEntry{h.titleEntry("Console")}
	for _, c := range []struct{ usage, desc string }{
		{"play <guide>", "show a guide or open a URL"},
		{"param n => v", "set a parameter"},
		{"params", "list parameters"},
		{"params {..}", "replace all parameters"},
		{"params clear", "remove all parameters"},
		{"clear", "clear messages"},
		{"history", "command history"},
	} {
		entries = append(entries, h.keyEntry(cmdchar+c.usage, c.desc))
	}
	return entries
}

func (h *Model) defaultColumns() ([]helpEntry, []helpEntry, []helpEntry) {
	var left []helpEntry
	left = append(left, h.scopeEntries("UI", actions.OwnerUi)...)
	left = append(left, h.blankEntry())
	left = append(left, h.scopeEntries("Editor", actions.OwnerEditor)...)

	var middle []helpEntry
	middle = append(middle, h.scopeEntries("Completion", actions.OwnerCompletion)...)
	middle = append(middle, h.blankEntry())
	middle = append(middle, h.scopeEntries("Command history", actions.OwnerCommandHistory)...)

	right := h.consoleEntries()
	right = append(right, h.blankEntry(), h.titleEntry("Help"), h.keyEntry("/", "search"))
	right = append(right, h.scopeEntries("", actions.OwnerHelp)[1:]...)
	return left, middle, right
}

func entriesToStrings(entries []helpEntry) []string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.view
	}
	return lines
}

func (h *Model) searchColumn(height int, columns ...[]helpEntry) []string {
	var allEntries []helpEntry
	for _, column := range columns {
		allEntries = append(allEntries, column...)
	}
	return h.searchEntries(height, allEntries)
}

func (h *Model) searchEntries(height int, entries []helpEntry) []string {
	lines := make([]string, 0, height)
	lines = append(lines, h.styles.title.Render(fmt.Sprintf("Search: %s", h.searchQuery)))

	if len(lines) < height {
		lines = append(lines, h.styles.dimmed.Render("Esc to cancel. Type to filter help entries."))
	}

	query := strings.ToLower(h.searchQuery)
	start := len(lines)
	for _, entry := range entries {
		if len(lines) == height {
			break
		}
		if query == "" && entry.view != "" || entry.matches(query) {
			lines = append(lines, entry.view)
		}
	}
	if query != "" && len(lines) == start && len(lines) < height {
		lines = append(lines, h.styles.dimmed.Render("No matching help entries."))
	}

	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	}
	return lines[:height]
}

func (h *Model) renderColumn(width int, height int, lines ...string) string {
	return h.styles.text.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func New(context *context.MainContext) *Model {
	styles := styles{
		border:   common.DefaultPalette.GetBorder("help border", lipgloss.NormalBorder()).Padding(1),
		title:    common.DefaultPalette.Get("help title").PaddingLeft(1),
		text:     common.DefaultPalette.Get("help text"),
		dimmed:   common.DefaultPalette.Get("help dimmed").PaddingLeft(1),
		shortcut: common.DefaultPalette.Get("help shortcut"),
	}
	return &Model{
		context: context,
		styles:  styles,
	}
}
