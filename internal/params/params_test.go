package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParam(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantName  string
		wantValue any
	}{
		{name: "arrow integer", arg: "x => 1", wantName: "x", wantValue: int64(1)},
		{name: "colon string", arg: "name: 'Alice'", wantName: "name", wantValue: "Alice"},
		{name: "double quoted", arg: `name => "Bob"`, wantName: "name", wantValue: "Bob"},
		{name: "float", arg: "ratio => 0.5", wantName: "ratio", wantValue: 0.5},
		{name: "bool", arg: "flag => true", wantName: "flag", wantValue: true},
		{name: "null", arg: "nothing => null", wantName: "nothing", wantValue: nil},
		{name: "list", arg: "ids => [1, 2, 3]", wantName: "ids", wantValue: []any{int64(1), int64(2), int64(3)}},
		{name: "map", arg: "props => {a: 1, b: 'x'}", wantName: "props", wantValue: map[string]any{"a": int64(1), "b": "x"}},
		{name: "backticked name", arg: "`my param` => 2", wantName: "my param", wantValue: int64(2)},
		{name: "extra whitespace", arg: "   y   =>   42  ", wantName: "y", wantValue: int64(42)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, value, err := ParseParam(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestParseParam_Errors(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{name: "no separator", arg: "x 1"},
		{name: "missing name", arg: "=> 1"},
		{name: "missing value", arg: "x =>"},
		{name: "broken value", arg: "x => [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseParam(tt.arg)
			assert.Error(t, err)
		})
	}
}

func TestParseParams(t *testing.T) {
	values, err := ParseParams("{a: 1, b: 'x', c: [true]}")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1), "b": "x", "c": []any{true}}, values)

	_, err = ParseParams("[1, 2]")
	assert.Error(t, err)

	_, err = ParseParams("a: 1")
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	store := NewStore()
	assert.Equal(t, "no parameters set", store.Format())

	store.Set("b", "x")
	store.Set("a", int64(1))
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, "a: 1\nb: \"x\"", store.Format())

	all := store.All()
	all["c"] = true
	assert.Equal(t, 2, store.Len(), "All must return a copy")

	store.SetAll(map[string]any{"z": int64(9)})
	assert.Equal(t, map[string]any{"z": int64(9)}, store.All())

	store.SetAll(nil)
	assert.Equal(t, 0, store.Len())
	store.Set("after", int64(1))
	assert.Equal(t, 1, store.Len())

	store.Clear()
	assert.Equal(t, 0, store.Len())
}
