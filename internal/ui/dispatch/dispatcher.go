package dispatch

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/idursun/cypherui/internal/ui/bindings"
)

// Continuation describes a possible next key while a sequence is pending.
type Continuation struct {
	Key    string
	Action bindings.Action
	IsLeaf bool
}

// ResolveResult is the outcome of resolving a key press.
type ResolveResult struct {
	Action        bindings.Action
	Scope         bindings.Scope
	Args          map[string]any
	Pending       bool
	Consumed      bool
	Continuations []Continuation
}

type candidate struct {
	scope   bindings.Scope
	binding bindings.Binding
}

// Dispatcher resolves key presses against active scopes and bindings.
type Dispatcher struct {
	bindings map[bindings.Scope][]bindings.Binding

	buffered   []string
	candidates []candidate
}

func NewDispatcher(availableBindings []bindings.Binding) (*Dispatcher, error) {
	if err := bindings.ValidateBindings(availableBindings); err != nil {
		return nil, err
	}

	d := &Dispatcher{bindings: make(map[bindings.Scope][]bindings.Binding)}
	for _, binding := range availableBindings {
		d.bindings[binding.Scope] = append(d.bindings[binding.Scope], binding)
	}
	return d, nil
}

func (d *Dispatcher) ResetSequence() {
	d.buffered = nil
	d.candidates = nil
}

// Resolve applies dispatch rules for a key in the provided scope chain.
// Scopes must be ordered from innermost to outermost.
func (d *Dispatcher) Resolve(msg tea.KeyMsg, scopes []bindings.Scope) ResolveResult {
	key := msg.String()
	if key == "" {
		return ResolveResult{}
	}

	if len(d.candidates) > 0 {
		return d.continueSequence(key)
	}

	if started := d.startSequence(key, scopes); len(started) > 0 {
		d.buffered = []string{key}
		d.candidates = started
		return ResolveResult{Pending: true, Consumed: true, Continuations: d.pendingContinuations()}
	}

	for _, scope := range scopes {
		scopeBindings := d.bindings[scope]
		// last-added binding wins within a scope
		for i := len(scopeBindings) - 1; i >= 0; i-- {
			binding := scopeBindings[i]
			for _, candidateKey := range binding.Key {
				if keysEqual(candidateKey, key) {
					return ResolveResult{Action: binding.Action, Scope: scope, Args: bindings.CloneArgs(binding.Args), Consumed: true}
				}
			}
		}
	}

	return ResolveResult{}
}

func (d *Dispatcher) continueSequence(key string) ResolveResult {
	if key == "esc" {
		d.ResetSequence()
		return ResolveResult{Consumed: true}
	}

	next := append(append([]string(nil), d.buffered...), key)
	filtered := make([]candidate, 0, len(d.candidates))
	for _, c := range d.candidates {
		if hasPrefix(c.binding.Seq, next) {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 {
		// the key is swallowed when it breaks a pending sequence
		d.ResetSequence()
		return ResolveResult{Consumed: true}
	}

	d.buffered = next
	d.candidates = filtered

	var match *candidate
	for i, c := range filtered {
		if len(c.binding.Seq) != len(d.buffered) {
			continue
		}
		if match == nil || c.scope == match.scope {
			match = &filtered[i]
		}
	}
	if match != nil {
		result := ResolveResult{Action: match.binding.Action, Scope: match.scope, Args: bindings.CloneArgs(match.binding.Args), Consumed: true}
		d.ResetSequence()
		return result
	}

	return ResolveResult{Pending: true, Consumed: true, Continuations: d.pendingContinuations()}
}

func (d *Dispatcher) startSequence(key string, scopes []bindings.Scope) []candidate {
	var candidates []candidate
	for _, scope := range scopes {
		for _, binding := range d.bindings[scope] {
			if len(binding.Seq) > 0 && keysEqual(binding.Seq[0], key) {
				candidates = append(candidates, candidate{scope: scope, binding: binding})
			}
		}
	}
	return candidates
}

func (d *Dispatcher) pendingContinuations() []Continuation {
	seen := map[string]struct{}{}
	idx := len(d.buffered)
	continuations := make([]Continuation, 0, len(d.candidates))
	for _, c := range d.candidates {
		if idx >= len(c.binding.Seq) {
			continue
		}
		next := c.binding.Seq[idx]
		if _, ok := seen[next]; ok {
			continue
		}
		seen[next] = struct{}{}
		continuations = append(continuations, Continuation{
			Key:    next,
			Action: c.binding.Action,
			IsLeaf: idx == len(c.binding.Seq)-1,
		})
	}
	return continuations
}

func hasPrefix(full []string, prefix []string) bool {
	if len(prefix) > len(full) {
		return false
	}
	for i := range prefix {
		if !keysEqual(full[i], prefix[i]) {
			return false
		}
	}
	return true
}

func normalizeKeyName(key string) string {
	if strings.EqualFold(key, "space") {
		return " "
	}
	return key
}

func keysEqual(a string, b string) bool {
	return normalizeKeyName(a) == normalizeKeyName(b)
}
