package helpkeys

import (
	"testing"

	"github.com/idursun/cypherui/internal/config"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/dispatch"
	"github.com/stretchr/testify/assert"
)

func TestBuildFromBindings_RespectsScopeOrderAndActionLeafDedupe(t *testing.T) {
	bindings := []config.BindingConfig{
		{Action: "command_history.move_down", Scope: "command_history", Key: config.StringList{"j", "down"}},
		{Action: "editor.completion.move_down", Scope: "editor.completion", Key: config.StringList{"tab"}},
		{Action: "editor.completion.apply", Scope: "editor.completion", Key: config.StringList{"enter"}},
		{Action: "command_history.apply", Scope: "command_history", Key: config.StringList{"a"}},
	}
	scopes := []keybindings.Scope{"editor.completion", "command_history"}

	entries := BuildFromBindings(scopes, bindings)
	assert.Equal(t, []Entry{
		{Label: "tab", Desc: "move down"},
		{Label: "⏎", Desc: "apply"},
	}, entries)
}

func TestBuildFromBindings_UsesConfiguredDescription(t *testing.T) {
	bindings := []config.BindingConfig{
		{Action: "editor.execute", Scope: "editor", Key: config.StringList{"ctrl+enter"}, Desc: "run"},
		{Action: "ui.clear_messages", Scope: "editor", Seq: config.StringList{"ctrl+x", "ctrl+l"}},
	}

	entries := BuildFromBindings([]keybindings.Scope{"editor"}, bindings)
	assert.Equal(t, []Entry{
		{Label: "ctrl+enter", Desc: "run"},
		{Label: "ctrl+x ctrl+l", Desc: "clear messages"},
	}, entries)
}

func TestBuildFromContinuations_SortsAndAnnotatesNonLeaf(t *testing.T) {
	entries := BuildFromContinuations([]dispatch.Continuation{
		{Key: "g", Action: "ui.open_command_history", IsLeaf: false},
		{Key: "ctrl+l", Action: "ui.clear_messages", IsLeaf: true},
	})

	assert.Equal(t, []Entry{
		{Label: "ctrl+l", Desc: "clear messages"},
		{Label: "g", Desc: "open command history ..."},
	}, entries)
	assert.Nil(t, BuildFromContinuations(nil))
}

func TestNormalizeDisplayKey_PrettyKeys(t *testing.T) {
	assert.Equal(t, "↑", NormalizeDisplayKey("up"))
	assert.Equal(t, "↓", NormalizeDisplayKey("down"))
	assert.Equal(t, "←", NormalizeDisplayKey("left"))
	assert.Equal(t, "→", NormalizeDisplayKey("right"))
	assert.Equal(t, "space", NormalizeDisplayKey(" "))
	assert.Equal(t, "ctrl+o", NormalizeDisplayKey("ctrl+o"))
}
