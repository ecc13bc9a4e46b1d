package completion

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type items []Item

func (it items) Len() int            { return len(it) }
func (it items) String(i int) string { return it[i].View }

// Filter ranks candidates by how well their View matches prefix.
func Filter(prefix string, candidates []Item) []Item {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return candidates
	}
	matches := fuzzy.FindFrom(prefix, items(candidates))
	filtered := make([]Item, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, candidates[match.Index])
	}
	return filtered
}
