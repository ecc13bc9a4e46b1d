package dispatch

import (
	tea "charm.land/bubbletea/v2"
	"github.com/idursun/cypherui/internal/ui/actions"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
	"github.com/idursun/cypherui/internal/ui/intents"
)

// Result is the outcome of full dispatch resolution.
type Result struct {
	Intent        intents.Intent
	Owner         string
	Args          map[string]any
	Pending       bool
	Consumed      bool
	Continuations []Continuation
}

// Resolver wraps a Dispatcher and carries resolution through to intents.
type Resolver struct {
	dispatcher *Dispatcher
}

func NewResolver(d *Dispatcher) *Resolver {
	return &Resolver{dispatcher: d}
}

// ResolveKey resolves a key press: key → binding → action → intent.
func (r *Resolver) ResolveKey(msg tea.KeyMsg, scopes []keybindings.Scope) Result {
	if r == nil || r.dispatcher == nil {
		return Result{}
	}

	bound := r.dispatcher.Resolve(msg, scopes)
	switch {
	case bound.Pending:
		return Result{Pending: true, Consumed: true, Continuations: bound.Continuations}
	case bound.Action != "":
		return r.ResolveAction(bound.Action, bound.Args)
	case bound.Consumed:
		return Result{Consumed: true}
	}
	return Result{}
}

// ResolveAction resolves an action by name. Unknown actions are not consumed
// so the key can fall through to the focused model.
func (r *Resolver) ResolveAction(action keybindings.Action, args map[string]any) Result {
	intent, ok := actions.ResolveByAction(action, args)
	if !ok {
		return Result{}
	}
	return Result{Intent: intent, Owner: actions.Owner(action), Args: args, Consumed: true}
}

func (r *Resolver) ResetSequence() {
	if r != nil && r.dispatcher != nil {
		r.dispatcher.ResetSequence()
	}
}
