package actions

import (
	"strings"

	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/intents"
)

const (
	OwnerUi             = "ui"
	OwnerEditor         = "editor"
	OwnerCompletion     = "editor.completion"
	OwnerCommandHistory = "command_history"
	OwnerHelp           = "help"
)

const (
	UiQuit               keybindings.Action = "ui.quit"
	UiOpenCommandHistory keybindings.Action = "ui.open_command_history"
	UiDismissMessage     keybindings.Action = "ui.dismiss_message"
	UiClearMessages      keybindings.Action = "ui.clear_messages"
	UiHelp               keybindings.Action = "ui.help"

	EditorExecute          keybindings.Action = "editor.execute"
	EditorClear            keybindings.Action = "editor.clear"
	EditorHistoryPrev      keybindings.Action = "editor.history_prev"
	EditorHistoryNext      keybindings.Action = "editor.history_next"
	EditorAutocomplete     keybindings.Action = "editor.autocomplete"
	EditorAutocompleteBack keybindings.Action = "editor.autocomplete_back"

	CompletionMoveUp   keybindings.Action = "editor.completion.move_up"
	CompletionMoveDown keybindings.Action = "editor.completion.move_down"
	CompletionApply    keybindings.Action = "editor.completion.apply"
	CompletionCancel   keybindings.Action = "editor.completion.cancel"

	CommandHistoryMoveUp         keybindings.Action = "command_history.move_up"
	CommandHistoryMoveDown       keybindings.Action = "command_history.move_down"
	CommandHistoryApply          keybindings.Action = "command_history.apply"
	CommandHistoryDeleteSelected keybindings.Action = "command_history.delete_selected"
	CommandHistoryClose          keybindings.Action = "command_history.close"

	HelpClose keybindings.Action = "help.close"
)

var catalog = map[keybindings.Action]func(args map[string]any) intents.Intent{
	UiQuit:               func(map[string]any) intents.Intent { return intents.Quit{} },
	UiOpenCommandHistory: func(map[string]any) intents.Intent { return intents.CommandHistoryToggle{} },
	UiDismissMessage:     func(map[string]any) intents.Intent { return intents.DismissOldest{} },
	UiClearMessages:      func(map[string]any) intents.Intent { return intents.ClearMessages{} },
	UiHelp:               func(map[string]any) intents.Intent { return intents.HelpToggle{} },

	EditorExecute:          func(map[string]any) intents.Intent { return intents.EditorExecute{} },
	EditorClear:            func(map[string]any) intents.Intent { return intents.EditorClear{} },
	EditorHistoryPrev:      func(args map[string]any) intents.Intent { return intents.EditorHistoryNavigate{Delta: -deltaArg(args)} },
	EditorHistoryNext:      func(args map[string]any) intents.Intent { return intents.EditorHistoryNavigate{Delta: deltaArg(args)} },
	EditorAutocomplete:     func(map[string]any) intents.Intent { return intents.CompletionCycle{} },
	EditorAutocompleteBack: func(map[string]any) intents.Intent { return intents.CompletionCycle{Reverse: true} },

	CompletionMoveUp:   func(args map[string]any) intents.Intent { return intents.CompletionMove{Delta: -deltaArg(args)} },
	CompletionMoveDown: func(args map[string]any) intents.Intent { return intents.CompletionMove{Delta: deltaArg(args)} },
	CompletionApply:    func(map[string]any) intents.Intent { return intents.CompletionApply{} },
	CompletionCancel:   func(map[string]any) intents.Intent { return intents.Cancel{} },

	CommandHistoryMoveUp: func(args map[string]any) intents.Intent {
		return intents.CommandHistoryNavigate{Delta: -deltaArg(args)}
	},
	CommandHistoryMoveDown:       func(args map[string]any) intents.Intent { return intents.CommandHistoryNavigate{Delta: deltaArg(args)} },
	CommandHistoryApply:          func(map[string]any) intents.Intent { return intents.CommandHistoryApply{} },
	CommandHistoryDeleteSelected: func(map[string]any) intents.Intent { return intents.CommandHistoryDeleteSelected{} },
	CommandHistoryClose:          func(map[string]any) intents.Intent { return intents.CommandHistoryClose{} },

	HelpClose: func(map[string]any) intents.Intent { return intents.HelpClose{} },
}

// BuiltIns lists every action the catalog can resolve.
func BuiltIns() []keybindings.Action {
	out := make([]keybindings.Action, 0, len(catalog))
	for action := range catalog {
		out = append(out, action)
	}
	return out
}

func IsBuiltIn(action keybindings.Action) bool {
	_, ok := catalog[action]
	return ok
}

// ResolveByAction resolves an action to an intent. Binding args may carry an
// integer "delta" for the navigation actions.
func ResolveByAction(action keybindings.Action, args map[string]any) (intents.Intent, bool) {
	name := keybindings.Action(strings.TrimSpace(string(action)))
	build, ok := catalog[name]
	if !ok {
		return nil, false
	}
	return build(args), true
}

// Owner returns the scope that owns an action: everything before the last dot.
func Owner(action keybindings.Action) string {
	name := strings.TrimSpace(string(action))
	if !IsBuiltIn(keybindings.Action(name)) {
		return ""
	}
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

func deltaArg(args map[string]any) int {
	switch v := args["delta"].(type) {
	case int:
		if v > 0 {
			return v
		}
	case int64:
		if v > 0 {
			return int(v)
		}
	}
	return 1
}
