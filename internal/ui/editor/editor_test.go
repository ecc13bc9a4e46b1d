package editor

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/idursun/cypherui/internal/completion"
	"github.com/idursun/cypherui/internal/cypher"
	"github.com/idursun/cypherui/internal/ui/actions"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/intents"
	"github.com/idursun/cypherui/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T) *Model {
	source := completion.NewSource(":")
	source.SetSchema(&cypher.Schema{
		Labels:            []string{"Person", "Place"},
		RelationshipTypes: []string{"KNOWS"},
	})
	m := New(test.NewTestContext(test.NewFakeRunner(t)), source)
	m.SetWidth(60)
	return m
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSetContentReplacesValue(t *testing.T) {
	m := newEditor(t)
	typeText(m, "old")

	m.Update(intents.SetContent{Message: "RETURN 1"})

	assert.Equal(t, "RETURN 1", m.Value())
}

func TestTypingGoesToTheInput(t *testing.T) {
	m := newEditor(t)

	typeText(m, "MATCH")

	assert.Equal(t, "MATCH", m.Value())
}

func TestExecuteEmitsCommandAndClears(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "RETURN 1"})

	msgs := test.Messages(m.Update(intents.EditorExecute{}))

	assert.Equal(t, []tea.Msg{intents.ExecuteCommand{Command: "RETURN 1", Source: intents.SourceEditor}}, msgs)
	assert.Equal(t, "", m.Value())
}

func TestExecuteIgnoresBlankContent(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "  \n "})

	assert.Nil(t, m.Update(intents.EditorExecute{}))
}

func TestHistoryNavigationRestoresDraft(t *testing.T) {
	m := newEditor(t)
	for _, query := range []string{"RETURN 1", "RETURN 2"} {
		m.Update(intents.SetContent{Message: query})
		m.Update(intents.EditorExecute{})
	}
	m.Update(intents.SetContent{Message: "draft"})

	m.Update(intents.EditorHistoryNavigate{Delta: -1})
	assert.Equal(t, "RETURN 2", m.Value())
	m.Update(intents.EditorHistoryNavigate{Delta: -1})
	assert.Equal(t, "RETURN 1", m.Value())
	m.Update(intents.EditorHistoryNavigate{Delta: -1})
	assert.Equal(t, "RETURN 1", m.Value())

	m.Update(intents.EditorHistoryNavigate{Delta: 1})
	m.Update(intents.EditorHistoryNavigate{Delta: 1})
	assert.Equal(t, "draft", m.Value())
}

func TestClear(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "RETURN 1"})

	m.Update(intents.EditorClear{})

	assert.Equal(t, "", m.Value())
}

func TestCompletion_SingleCandidateIsAppliedImmediately(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "MATCH (n:Pers"})

	m.Update(intents.CompletionCycle{})

	assert.False(t, m.Completing())
	assert.Equal(t, "MATCH (n:Person", m.Value())
}

func TestCompletion_PopupCycleAndApply(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "MATCH (n:P"})

	m.Update(intents.CompletionCycle{})
	require.True(t, m.Completing())
	require.GreaterOrEqual(t, len(m.Completions()), 2)
	assert.Equal(t, []keybindings.Scope{actions.OwnerCompletion, actions.OwnerEditor}, m.Scopes())
	assert.Contains(t, m.View(), ":Person")

	m.Update(intents.CompletionCycle{})
	second := m.Completions()[1]
	m.Update(intents.CompletionApply{})

	assert.False(t, m.Completing())
	assert.Equal(t, "MATCH (n"+second.Content, m.Value())
	assert.Equal(t, []keybindings.Scope{actions.OwnerEditor}, m.Scopes())
}

func TestCompletion_MoveWrapsAround(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "MATCH (n:P"})
	m.Update(intents.CompletionCycle{})
	require.True(t, m.Completing())

	m.Update(intents.CompletionMove{Delta: -1})

	assert.Equal(t, len(m.Completions())-1, m.selected)
}

func TestCompletion_CancelKeepsText(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "MATCH (n:P"})
	m.Update(intents.CompletionCycle{})

	m.Update(intents.Cancel{})

	assert.False(t, m.Completing())
	assert.Equal(t, "MATCH (n:P", m.Value())
}

func TestCompletion_NoCandidates(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "MATCH "})

	m.Update(intents.CompletionCycle{})

	assert.False(t, m.Completing())
	assert.Equal(t, "MATCH ", m.Value())
}

func TestCompletion_RefreshAfterTyping(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "MATCH (n:P"})
	m.Update(intents.CompletionCycle{})
	require.True(t, m.Completing())

	typeText(m, "e")
	m.Update(refreshCompletionsMsg{seq: m.refreshSeq, text: m.Value()})

	require.NotEmpty(t, m.Completions())
	assert.Equal(t, ":Person", m.Completions()[0].View)

	m.Update(refreshCompletionsMsg{seq: m.refreshSeq, text: "stale"})
	assert.True(t, m.Completing())
}

func TestCompletion_OnlyLatestRefreshApplies(t *testing.T) {
	m := newEditor(t)
	m.Update(intents.SetContent{Message: "MATCH (n:P"})
	m.Update(intents.CompletionCycle{})
	require.True(t, m.Completing())
	before := m.Completions()

	typeText(m, "e")
	stale := m.refreshSeq
	typeText(m, "r")
	require.Greater(t, m.refreshSeq, stale)

	m.Update(refreshCompletionsMsg{seq: stale, text: m.Value()})
	assert.Equal(t, before, m.Completions())

	m.Update(refreshCompletionsMsg{seq: m.refreshSeq, text: m.Value()})
	require.NotEmpty(t, m.Completions())
	assert.Equal(t, ":Person", m.Completions()[0].View)
}
