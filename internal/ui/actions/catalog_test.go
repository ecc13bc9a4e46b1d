package actions

import (
	"testing"

	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/intents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveByAction(t *testing.T) {
	tests := []struct {
		action keybindings.Action
		args   map[string]any
		want   intents.Intent
	}{
		{action: UiQuit, want: intents.Quit{}},
		{action: EditorExecute, want: intents.EditorExecute{}},
		{action: EditorHistoryPrev, want: intents.EditorHistoryNavigate{Delta: -1}},
		{action: EditorAutocompleteBack, want: intents.CompletionCycle{Reverse: true}},
		{action: CompletionMoveDown, args: map[string]any{"delta": int64(5)}, want: intents.CompletionMove{Delta: 5}},
		{action: CompletionMoveUp, args: map[string]any{"delta": -3}, want: intents.CompletionMove{Delta: -1}},
		{action: CommandHistoryApply, want: intents.CommandHistoryApply{}},
		{action: " ui.clear_messages ", want: intents.ClearMessages{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			intent, ok := ResolveByAction(tt.action, tt.args)
			require.True(t, ok)
			assert.Equal(t, tt.want, intent)
		})
	}
}

func TestResolveByAction_Unknown(t *testing.T) {
	_, ok := ResolveByAction("editor.explode", nil)
	assert.False(t, ok)
	_, ok = ResolveByAction("", nil)
	assert.False(t, ok)
}

func TestOwner(t *testing.T) {
	assert.Equal(t, OwnerUi, Owner(UiQuit))
	assert.Equal(t, OwnerCompletion, Owner(CompletionApply))
	assert.Equal(t, OwnerCommandHistory, Owner(CommandHistoryClose))
	assert.Equal(t, OwnerHelp, Owner(HelpClose))
	assert.Equal(t, "", Owner("my_action"))
}

func TestBuiltInsAreAllResolvable(t *testing.T) {
	for _, action := range BuiltIns() {
		assert.True(t, IsBuiltIn(action))
		_, ok := ResolveByAction(action, nil)
		assert.True(t, ok, action)
	}
}
