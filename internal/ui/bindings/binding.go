package bindings

import (
	"maps"

	"github.com/cockroachdb/errors"
)

// Action names something the UI can do, e.g. "editor.execute".
type Action string

// Scope names the part of the UI a binding is active in. Scopes are dotted
// paths; "editor.completion" is nested inside "editor".
type Scope string

// Binding maps a key (or key sequence) to an action in a scope.
type Binding struct {
	Action Action
	Scope  Scope
	Key    []string
	Seq    []string
	Args   map[string]any
}

func (b Binding) validate() error {
	if b.Action == "" {
		return errors.New("binding action is required")
	}
	if b.Scope == "" {
		return errors.New("binding scope is required")
	}

	hasKey := len(b.Key) > 0
	hasSeq := len(b.Seq) > 0
	if hasKey == hasSeq {
		return errors.Newf("binding %q in scope %q must set exactly one of key or seq", b.Action, b.Scope)
	}

	for _, key := range b.Key {
		if key == "" {
			return errors.Newf("binding %q in scope %q contains empty key", b.Action, b.Scope)
		}
	}
	for _, seqKey := range b.Seq {
		if seqKey == "" {
			return errors.Newf("binding %q in scope %q contains empty sequence key", b.Action, b.Scope)
		}
	}
	if len(b.Seq) == 1 {
		return errors.Newf("binding %q in scope %q has seq with only one key; use key instead", b.Action, b.Scope)
	}

	return nil
}

func ValidateBindings(bindings []Binding) error {
	for i, binding := range bindings {
		if err := binding.validate(); err != nil {
			return errors.Wrapf(err, "invalid binding at index %d", i)
		}
	}
	return nil
}

func CloneArgs(args map[string]any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	return maps.Clone(args)
}
