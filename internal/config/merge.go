package config

import (
	"slices"
	"strings"
)

type bindingInputMode int

const (
	bindingInputNone bindingInputMode = iota
	bindingInputKey
	bindingInputSeq
	bindingInputInvalid
)

func mergeBindings(base []BindingConfig, overlay []BindingConfig) []BindingConfig {
	merged := append([]BindingConfig(nil), base...)
	for _, userBinding := range overlay {
		merged = removeShadowedBindings(merged, userBinding)
		merged = append(merged, userBinding)
	}
	return merged
}

func removeShadowedBindings(existing []BindingConfig, user BindingConfig) []BindingConfig {
	scope := strings.TrimSpace(user.Scope)
	if scope == "" {
		return existing
	}
	mode := bindingInputModeOf(user)
	if mode == bindingInputNone || mode == bindingInputInvalid {
		return existing
	}

	userKeys := make(map[string]struct{}, len(user.Key))
	for _, key := range user.Key {
		userKeys[key] = struct{}{}
	}

	filtered := make([]BindingConfig, 0, len(existing))
	for _, binding := range existing {
		if strings.TrimSpace(binding.Scope) != scope {
			filtered = append(filtered, binding)
			continue
		}

		if mode == bindingInputSeq {
			if len(binding.Seq) > 0 && slices.Equal(binding.Seq, user.Seq) {
				continue
			}
			filtered = append(filtered, binding)
			continue
		}

		// a key binding only takes over the keys it names; the rest of an
		// existing multi-key binding survives.
		if len(binding.Key) > 0 {
			kept := make(StringList, 0, len(binding.Key))
			for _, key := range binding.Key {
				if _, shadowed := userKeys[key]; !shadowed {
					kept = append(kept, key)
				}
			}
			if len(kept) == 0 {
				continue
			}
			binding.Key = kept
		}
		filtered = append(filtered, binding)
	}
	return filtered
}

func bindingInputModeOf(binding BindingConfig) bindingInputMode {
	hasKey := len(binding.Key) > 0
	hasSeq := len(binding.Seq) > 0
	switch {
	case hasKey && hasSeq:
		return bindingInputInvalid
	case hasKey:
		return bindingInputKey
	case hasSeq:
		return bindingInputSeq
	default:
		return bindingInputNone
	}
}
