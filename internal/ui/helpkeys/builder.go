package helpkeys

import (
	"sort"
	"strings"

	"github.com/idursun/cypherui/internal/config"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/dispatch"
)

// Entry is a status-help key entry rendered as "key description".
type Entry struct {
	Label string
	Desc  string
}

// BuildFromBindings returns short-help entries for the provided scope chain,
// innermost scope first. An action leaf already listed by an inner scope is
// not repeated for an outer one.
func BuildFromBindings(scopes []keybindings.Scope, bindings []config.BindingConfig) []Entry {
	byScope := make(map[keybindings.Scope][]config.BindingConfig)
	for _, binding := range bindings {
		scope := keybindings.Scope(strings.TrimSpace(binding.Scope))
		byScope[scope] = append(byScope[scope], binding)
	}

	seen := map[string]bool{}
	var entries []Entry
	for _, scope := range scopes {
		for _, b := range byScope[scope] {
			leaf := actionToken(strings.TrimSpace(b.Action))
			if leaf == "" || seen[leaf] {
				continue
			}
			label := BindingLabel(b)
			if label == "" {
				continue
			}
			entries = append(entries, Entry{Label: label, Desc: bindingDesc(b)})
		}
		for _, b := range byScope[scope] {
			seen[actionToken(strings.TrimSpace(b.Action))] = true
		}
	}
	return entries
}

// BuildFromContinuations returns sequence continuation entries, sorted for stable display.
func BuildFromContinuations(continuations []dispatch.Continuation) []Entry {
	if len(continuations) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(continuations))
	for _, continuation := range continuations {
		desc := descFromAction(string(continuation.Action))
		if !continuation.IsLeaf {
			desc += " ..."
		}
		entries = append(entries, Entry{
			Label: NormalizeDisplayKey(continuation.Key),
			Desc:  desc,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Label != entries[j].Label {
			return entries[i].Label < entries[j].Label
		}
		return entries[i].Desc < entries[j].Desc
	})
	return entries
}

func BindingLabel(binding config.BindingConfig) string {
	if len(binding.Key) > 0 {
		return joinKeys(binding.Key, "/")
	}
	if len(binding.Seq) > 0 {
		return joinKeys(binding.Seq, " ")
	}
	return ""
}

func joinKeys(keys []string, sep string) string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, NormalizeDisplayKey(k))
	}
	return strings.Join(out, sep)
}

func NormalizeDisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	switch strings.ToLower(key) {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	case "enter":
		return "⏎"
	}
	return key
}

func bindingDesc(b config.BindingConfig) string {
	if desc := strings.TrimSpace(b.Desc); desc != "" {
		return desc
	}
	return descFromAction(strings.TrimSpace(b.Action))
}

// descFromAction turns "editor.history_prev" into "history prev".
func descFromAction(action string) string {
	return strings.ReplaceAll(actionToken(action), "_", " ")
}

func actionToken(action string) string {
	if idx := strings.LastIndexByte(action, '.'); idx >= 0 && idx < len(action)-1 {
		return action[idx+1:]
	}
	return action
}
