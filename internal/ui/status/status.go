package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/context"
	"github.com/idursun/cypherui/internal/ui/helpkeys"
)

type styles struct {
	shortcut lipgloss.Style
	dimmed   lipgloss.Style
	text     lipgloss.Style
	title    lipgloss.Style
}

// Model is the single line at the bottom of the screen showing the mode,
// the connection and the key bindings of the focused scope.
type Model struct {
	context *context.MainContext
	entries []helpkeys.Entry
	mode    string
	styles  styles
}

func New(context *context.MainContext) *Model {
	return &Model{
		context: context,
		mode:    "editor",
		styles: styles{
			shortcut: common.DefaultPalette.Get("status shortcut"),
			dimmed:   common.DefaultPalette.Get("status dimmed"),
			text:     common.DefaultPalette.Get("status text"),
			title:    common.DefaultPalette.Get("status title"),
		},
	}
}

func (m *Model) SetHelp(entries []helpkeys.Entry) {
	m.entries = entries
}

func (m *Model) Help() []helpkeys.Entry {
	return m.entries
}

func (m *Model) SetMode(mode string) {
	m.mode = mode
}

func (m *Model) Mode() string {
	return m.mode
}

func (m *Model) connection() string {
	neo4j := m.context.Config.Neo4j
	target := neo4j.URI
	if neo4j.Database != "" {
		target += "/" + neo4j.Database
	}
	if n := m.context.Params.Len(); n > 0 {
		target += fmt.Sprintf(" · %d params", n)
	}
	return target
}

func (m *Model) View(width int) string {
	mode := m.styles.title.Render(" " + m.mode + " ")
	connection := m.styles.dimmed.Render(" " + m.connection() + " ")
	used := lipgloss.Width(mode) + lipgloss.Width(connection)
	help := m.helpView(max(0, width-used-1))
	line := mode + connection + " " + help
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// helpView renders as many entries as fit in maxWidth.
func (m *Model) helpView(maxWidth int) string {
	separator := m.styles.dimmed.Render(" • ")
	var rendered []string
	width := 0
	for _, entry := range m.entries {
		item := m.styles.shortcut.Render(entry.Label) + m.styles.dimmed.PaddingLeft(1).Render(entry.Desc)
		itemWidth := lipgloss.Width(item)
		if len(rendered) > 0 {
			itemWidth += lipgloss.Width(separator)
		}
		if width+itemWidth > maxWidth {
			break
		}
		width += itemWidth
		rendered = append(rendered, item)
	}
	return strings.Join(rendered, separator)
}
