package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/idursun/cypherui/internal/ui/actions"
	keybindings "github.com/idursun/cypherui/internal/ui/bindings"
)

// StringList allows TOML values to be specified as a string or array of strings.
type StringList []string

func (l *StringList) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*l = StringList{v}
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return errors.Newf("expected string in list, got %T", item)
			}
			out = append(out, s)
		}
		*l = StringList(out)
		return nil
	default:
		return errors.Newf("expected string or list of strings, got %T", value)
	}
}

type BindingConfig struct {
	Action string         `toml:"action"`
	Key    StringList     `toml:"key"`
	Seq    StringList     `toml:"seq"`
	Scope  string         `toml:"scope"`
	Args   map[string]any `toml:"args"`
	// Desc overrides the help text derived from the action name.
	Desc string `toml:"desc"`
}

// BindingsToRuntime converts config bindings to runtime bindings,
// skipping entries with empty scope or action.
func BindingsToRuntime(bindings []BindingConfig) []keybindings.Binding {
	out := make([]keybindings.Binding, 0, len(bindings))
	for _, binding := range bindings {
		scope := keybindings.Scope(strings.TrimSpace(binding.Scope))
		action := keybindings.Action(strings.TrimSpace(binding.Action))
		if scope == "" || action == "" {
			continue
		}
		out = append(out, keybindings.Binding{
			Action: action,
			Scope:  scope,
			Key:    append([]string(nil), binding.Key...),
			Seq:    append([]string(nil), binding.Seq...),
			Args:   keybindings.CloneArgs(binding.Args),
		})
	}
	return out
}

func (c *Config) ValidateBindings() error {
	for i, binding := range c.Bindings {
		if strings.TrimSpace(binding.Action) == "" {
			return errors.Newf("bindings[%d]: action is required", i)
		}
		if strings.TrimSpace(binding.Scope) == "" {
			return errors.Newf("bindings[%d]: scope is required", i)
		}
		if !actions.IsBuiltIn(keybindings.Action(strings.TrimSpace(binding.Action))) {
			return errors.Newf("bindings[%d]: unknown action %q", i, binding.Action)
		}
	}
	if err := keybindings.ValidateBindings(BindingsToRuntime(c.Bindings)); err != nil {
		return errors.Wrap(err, "bindings")
	}
	return nil
}
