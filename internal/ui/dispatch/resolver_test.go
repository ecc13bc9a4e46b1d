package dispatch

import (
	"testing"

	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/intents"
	"github.com/stretchr/testify/assert"
)

func makeResolver(bindings []keybindings.Binding) *Resolver {
	d, err := NewDispatcher(bindings)
	if err != nil {
		panic(err)
	}
	return NewResolver(d)
}

func TestResolveKey_BuiltInAction(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "ui.quit", Scope: "ui", Key: []string{"ctrl+c"}},
	})

	result := r.ResolveKey(ctrlKey('c'), []keybindings.Scope{"editor", "ui"})
	assert.True(t, result.Consumed)
	assert.Equal(t, intents.Quit{}, result.Intent)
	assert.Equal(t, "ui", result.Owner)
}

func TestResolveKey_Pending(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "ui.clear_messages", Scope: "ui", Seq: []string{"ctrl+x", "ctrl+l"}},
	})

	result := r.ResolveKey(ctrlKey('x'), []keybindings.Scope{"ui"})
	assert.True(t, result.Pending)
	assert.True(t, result.Consumed)
	assert.Nil(t, result.Intent)
	assert.Len(t, result.Continuations, 1)
}

func TestResolveKey_Unmatched(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "ui.quit", Scope: "ui", Key: []string{"ctrl+c"}},
	})

	result := r.ResolveKey(runeKey('x'), []keybindings.Scope{"ui"})
	assert.False(t, result.Consumed)
	assert.Nil(t, result.Intent)
}

func TestResolveKey_UnknownActionFallsThrough(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "my_action", Scope: "editor", Key: []string{"x"}},
	})

	result := r.ResolveKey(runeKey('x'), []keybindings.Scope{"editor"})
	assert.False(t, result.Consumed)
	assert.Nil(t, result.Intent)
}

func TestResolveAction_DirectCall(t *testing.T) {
	r := makeResolver(nil)

	result := r.ResolveAction("editor.completion.move_up", nil)
	assert.True(t, result.Consumed)
	assert.Equal(t, intents.CompletionMove{Delta: -1}, result.Intent)
	assert.Equal(t, "editor.completion", result.Owner)
}

func TestResolver_NilIsInert(t *testing.T) {
	var r *Resolver
	assert.Equal(t, Result{}, r.ResolveKey(runeKey('x'), nil))
	r.ResetSequence()
}
