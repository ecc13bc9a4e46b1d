// Package params holds the query parameters that are sent along with every
// Cypher statement run from the editor.
package params

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/idursun/cypherui/internal/cypher"
)

type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewStore() *Store {
	return &Store{values: map[string]any{}}
}

func (s *Store) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// SetAll replaces every parameter with the given map.
func (s *Store) SetAll(values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = maps.Clone(values)
	if s.values == nil {
		s.values = map[string]any{}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
}

// All returns a copy that is safe to hand to a query runner.
func (s *Store) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

func (s *Store) Format() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.values) == 0 {
		return "no parameters set"
	}
	var b strings.Builder
	for i, name := range slices.Sorted(maps.Keys(s.values)) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", name, cypher.FormatValue(s.values[name]))
	}
	return b.String()
}
