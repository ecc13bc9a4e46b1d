package helppage

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/intents"
	"github.com/idursun/cypherui/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainModel() *Model {
	return &Model{
		styles: styles{
			title:    lipgloss.NewStyle(),
			dimmed:   lipgloss.NewStyle(),
			text:     lipgloss.NewStyle(),
			shortcut: lipgloss.NewStyle(),
			border:   lipgloss.NewStyle(),
		},
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSearchEntries_FiltersByQuery(t *testing.T) {
	model := plainModel()
	model.searchQuery = "param"

	lines := model.searchEntries(5, []helpEntry{
		{view: "Param Entry", search: "param entry"},
		{view: "Other Entry", search: "other entry"},
		{view: "Params Entry", search: "params entry"},
	})

	require.Len(t, lines, 5)
	assert.Equal(t, "Search: param", lines[0])
	assert.Equal(t, "Param Entry", lines[2])
	assert.Equal(t, "Params Entry", lines[3])
	assert.Equal(t, "", lines[4])
}

func TestSearchEntries_ShowsNoMatchesMessage(t *testing.T) {
	model := plainModel()
	model.searchQuery = "unknown"

	lines := model.searchEntries(4, []helpEntry{{view: "Mode Entry", search: "mode entry"}})

	require.Len(t, lines, 4)
	assert.Equal(t, "No matching help entries.", lines[2])
}

func TestSearchEntries_TruncatesToHeight(t *testing.T) {
	model := plainModel()

	lines := model.searchEntries(3, []helpEntry{
		{view: "a", search: "a"},
		{view: "b", search: "b"},
	})

	require.Len(t, lines, 3)
	assert.Equal(t, "a", lines[2])
}

func TestView_ListsBindingsAndConsoleCommands(t *testing.T) {
	model := New(test.NewTestContext(test.NewFakeRunner(t)))

	view := model.View()

	assert.Contains(t, view, "ctrl+c")
	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "Command history")
	assert.Contains(t, view, ":play <guide>")
}

func TestUpdate_SearchModeTypingAndClose(t *testing.T) {
	model := New(test.NewTestContext(test.NewFakeRunner(t)))

	typeText(model, "x")
	assert.False(t, model.Searching())

	typeText(model, "/hist")
	require.True(t, model.Searching())
	assert.Equal(t, "hist", model.searchQuery)

	model.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	assert.Equal(t, "his", model.searchQuery)
	assert.Contains(t, model.View(), "Search: his")

	assert.Nil(t, model.Update(intents.HelpClose{}))
	assert.False(t, model.Searching())

	msgs := test.Messages(model.Update(intents.HelpClose{}))
	assert.Equal(t, []tea.Msg{common.CloseViewMsg{}}, msgs)
}
