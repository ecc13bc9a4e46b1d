package bindings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBindings(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		wantErr string
	}{
		{name: "valid key", binding: Binding{Action: "a", Scope: "ui", Key: []string{"x"}}},
		{name: "valid seq", binding: Binding{Action: "a", Scope: "ui", Seq: []string{"g", "g"}}},
		{name: "missing action", binding: Binding{Scope: "ui", Key: []string{"x"}}, wantErr: "action is required"},
		{name: "missing scope", binding: Binding{Action: "a", Key: []string{"x"}}, wantErr: "scope is required"},
		{name: "neither", binding: Binding{Action: "a", Scope: "ui"}, wantErr: "exactly one of key or seq"},
		{name: "empty key", binding: Binding{Action: "a", Scope: "ui", Key: []string{""}}, wantErr: "empty key"},
		{name: "short seq", binding: Binding{Action: "a", Scope: "ui", Seq: []string{"g"}}, wantErr: "only one key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBindings([]Binding{tt.binding})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "index 0")
		})
	}
}

func TestCloneArgs_IsIndependentCopy(t *testing.T) {
	assert.Nil(t, CloneArgs(nil))

	original := map[string]any{"delta": 1}
	clone := CloneArgs(original)
	clone["delta"] = 2
	assert.Equal(t, 1, original["delta"])
}
