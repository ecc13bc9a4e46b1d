package commandhistory

import (
	"fmt"
	"testing"

	"github.com/idursun/cypherui/internal/ui/common"
	"github.com/idursun/cypherui/internal/ui/flash"
	"github.com/idursun/cypherui/internal/ui/intents"
	"github.com/idursun/cypherui/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(t *testing.T, commands ...string) *flash.Model {
	source := flash.New(test.NewTestContext(test.NewFakeRunner(t)))
	for i, command := range commands {
		source.AddWithCommand(fmt.Sprintf("output-%d", i), command, nil)
	}
	return source
}

func TestFlash_HistoryIsBoundedToConfiguredLimit(t *testing.T) {
	source := newSource(t)
	for i := 1; i <= flash.HistoryLimit+5; i++ {
		source.AddWithCommand(fmt.Sprintf("m-%d", i), fmt.Sprintf("RETURN %d", i), nil)
	}

	snapshot := source.CommandHistorySnapshot()
	require.Len(t, snapshot, flash.HistoryLimit)
	assert.Equal(t, "m-6", snapshot[0].Text)
	assert.Equal(t, "m-55", snapshot[len(snapshot)-1].Text)
}

func TestFlash_HistoryOnlyContainsCommandMessages(t *testing.T) {
	source := newSource(t)

	source.Update(intents.AddMessage{Text: "user message"})
	source.Update(intents.UnsupportedURLCommand{Command: "nope"})
	source.AddWithCommand("1 row", "RETURN 1", nil)

	snapshot := source.CommandHistorySnapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "RETURN 1", snapshot[0].Command)
	assert.Equal(t, "1 row", snapshot[0].Text)
}

func TestCommandHistory_NavigationAdjustsSelection(t *testing.T) {
	source := newSource(t, "RETURN 0", "RETURN 1", "RETURN 2", "RETURN 3", "RETURN 4", "RETURN 5")

	history := New(test.NewTestContext(test.NewFakeRunner(t)), source)
	assert.Equal(t, 5, history.selectedIndex)

	history.Update(intents.CommandHistoryNavigate{Delta: 1})
	history.Update(intents.CommandHistoryNavigate{Delta: 1})
	assert.Equal(t, 3, history.selectedIndex)

	history.Update(intents.CommandHistoryNavigate{Delta: -1})
	assert.Equal(t, 4, history.selectedIndex)

	history.Update(intents.CommandHistoryNavigate{Delta: -10})
	assert.Equal(t, 5, history.selectedIndex)
}

func TestCommandHistory_ViewOnlyShowsSelectedOutput(t *testing.T) {
	source := flash.New(test.NewTestContext(test.NewFakeRunner(t)))
	source.AddWithCommand("older-output", "MATCH (n) RETURN n", nil)
	source.AddWithCommand("newer-output", ":params", nil)

	history := New(test.NewTestContext(test.NewFakeRunner(t)), source)
	history.SetWidth(60)
	history.Update(intents.CommandHistoryNavigate{Delta: 1})

	rendered := history.View()
	assert.Contains(t, rendered, "MATCH")
	assert.Contains(t, rendered, "older-output")
	assert.Contains(t, rendered, ":params")
	assert.NotContains(t, rendered, "newer-output")
}

func TestCommandHistory_EmptyView(t *testing.T) {
	history := New(test.NewTestContext(test.NewFakeRunner(t)), newSource(t))

	assert.Contains(t, history.View(), "no commands executed yet")
	_, ok := history.Selected()
	assert.False(t, ok)
	history.Update(intents.CommandHistoryDeleteSelected{})
	history.Update(intents.CommandHistoryNavigate{Delta: 1})
}

func TestCommandHistory_DeleteSelectedRemovesFromSourceAndLiveMessages(t *testing.T) {
	source := newSource(t, "RETURN 'older'", "RETURN 'newer'")

	history := New(test.NewTestContext(test.NewFakeRunner(t)), source)
	history.Update(intents.CommandHistoryNavigate{Delta: 1})
	history.Update(intents.CommandHistoryDeleteSelected{})

	require.Len(t, history.items, 1)
	assert.Equal(t, "RETURN 'newer'", history.items[0].Command)

	snapshot := source.CommandHistorySnapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "RETURN 'newer'", snapshot[0].Command)
	assert.Equal(t, 1, source.LiveMessagesCount())
}

func TestCommandHistory_ApplyLoadsCommandIntoEditor(t *testing.T) {
	source := newSource(t, "RETURN 'older'", "RETURN 'newer'")
	history := New(test.NewTestContext(test.NewFakeRunner(t)), source)
	history.Update(intents.CommandHistoryNavigate{Delta: 1})

	msgs := test.Messages(history.Update(intents.CommandHistoryApply{}))

	assert.Contains(t, msgs, intents.SetContent{Message: "RETURN 'older'"})
	assert.Contains(t, msgs, common.CloseViewMsg{})
}

func TestCommandHistory_CloseReturnsCloseViewMsg(t *testing.T) {
	history := New(test.NewTestContext(test.NewFakeRunner(t)), newSource(t, "RETURN 1"))

	for _, intent := range []intents.Intent{intents.CommandHistoryClose{}, intents.Cancel{}} {
		cmd := history.Update(intent)
		require.NotNil(t, cmd)
		assert.Equal(t, common.CloseViewMsg{}, cmd())
	}
}
