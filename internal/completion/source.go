package completion

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/idursun/cypherui/internal/cypher"
)

var keywords = []string{
	"MATCH", "OPTIONAL MATCH", "WHERE", "RETURN", "WITH", "UNWIND", "ORDER BY",
	"SKIP", "LIMIT", "CREATE", "MERGE", "ON CREATE SET", "ON MATCH SET", "SET",
	"DELETE", "DETACH DELETE", "REMOVE", "CALL", "YIELD", "UNION", "UNION ALL",
	"DISTINCT", "AS", "AND", "OR", "XOR", "NOT", "IN", "IS NULL", "IS NOT NULL",
	"STARTS WITH", "ENDS WITH", "CONTAINS", "CASE", "WHEN", "THEN", "ELSE", "END",
	"EXISTS", "FOREACH", "LOAD CSV", "USING INDEX", "SHOW", "ASC", "DESC",
}

var consoleCommands = []struct {
	name    string
	postfix string
}{
	{name: "play", postfix: "<guide or url>"},
	{name: "param", postfix: "<name> => <value>"},
	{name: "params", postfix: "[{...} | clear]"},
	{name: "clear", postfix: ""},
	{name: "history", postfix: ""},
}

var (
	plainName  = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	variables  = regexp.MustCompile(`[(\[]\s*([A-Za-z_][A-Za-z0-9_]*)|\bAS\s+([A-Za-z_][A-Za-z0-9_]*)|\bUNWIND\s+.+?\s+AS\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// Source collects the candidates offered while editing.
type Source struct {
	mu         sync.RWMutex
	cmdchar    string
	schema     []Item
	parameters []Item
}

func NewSource(cmdchar string) *Source {
	return &Source{cmdchar: cmdchar}
}

func quoteCallable(name string) string {
	if plainName.MatchString(name) {
		return name
	}
	return "`" + name + "`"
}

func quoteIdentifier(name string) string {
	if identifier.MatchString(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (s *Source) SetSchema(schema *cypher.Schema) {
	var result []Item
	if schema != nil {
		for _, label := range schema.Labels {
			result = append(result, Item{Type: TypeLabel, View: ":" + label, Content: ":" + quoteIdentifier(label)})
		}
		for _, relType := range schema.RelationshipTypes {
			result = append(result, Item{Type: TypeRelationshipType, View: ":" + relType, Content: ":" + quoteIdentifier(relType)})
		}
		for _, key := range schema.PropertyKeys {
			result = append(result, Item{Type: TypePropertyKey, View: key, Content: quoteIdentifier(key)})
		}
		for _, fn := range schema.Functions {
			result = append(result, Item{Type: TypeFunction, View: fn.Name, Content: quoteCallable(fn.Name), Postfix: fn.Signature})
		}
		for _, proc := range schema.Procedures {
			result = append(result, Item{Type: TypeProcedure, View: proc.Name, Content: quoteCallable(proc.Name), Postfix: proc.Signature})
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schema = result
}

// SetParameters replaces the parameter names offered after '$'.
func (s *Source) SetParameters(names []string) {
	sorted := slices.Sorted(slices.Values(names))
	result := make([]Item, 0, len(sorted))
	for _, name := range sorted {
		result = append(result, Item{Type: TypeParameter, View: "$" + name, Content: "$" + quoteIdentifier(name)})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parameters = result
}

func (s *Source) keywordItems() []Item {
	result := make([]Item, 0, len(keywords))
	for _, kw := range keywords {
		result = append(result, Item{Type: TypeKeyword, View: kw, Content: kw})
	}
	return result
}

func (s *Source) consoleCommandItems() []Item {
	result := make([]Item, 0, len(consoleCommands))
	for _, c := range consoleCommands {
		name := s.cmdchar + c.name
		result = append(result, Item{Type: TypeConsoleCommand, View: name, Content: name, Postfix: c.postfix})
	}
	return result
}

func variableItems(text string) []Item {
	var result []Item
	seen := map[string]bool{}
	for _, m := range variables.FindAllStringSubmatch(text, -1) {
		for _, name := range m[1:] {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			result = append(result, Item{Type: TypeVariable, View: name, Content: name})
		}
	}
	return result
}

// Items returns every candidate known for text, without filtering.
func (s *Source) Items(text string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := s.consoleCommandItems()
	result = append(result, s.keywordItems()...)
	result = append(result, variableItems(text)...)
	result = append(result, s.schema...)
	return append(result, s.parameters...)
}

// Complete returns the candidates for the word at the end of text, ranked
// against that word. The candidate set depends on the shape of the word.
func (s *Source) Complete(text string) []Item {
	start, word := CurrentWord(text)
	if s.cmdchar != "" && strings.HasPrefix(text, s.cmdchar) {
		if strings.ContainsAny(text, " \n") {
			return nil
		}
		return Filter(text, s.consoleCommandItems())
	}
	if word == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var candidates []Item
	switch {
	case strings.HasPrefix(word, "$"):
		candidates = s.parameters
	case strings.HasPrefix(word, ":"):
		candidates = filterTypes(s.schema, TypeLabel, TypeRelationshipType)
	default:
		candidates = s.keywordItems()
		candidates = append(candidates, variableItems(text[:start])...)
		candidates = append(candidates, filterTypes(s.schema, TypePropertyKey, TypeFunction, TypeProcedure)...)
	}
	return Filter(word, candidates)
}

func filterTypes(all []Item, types ...Type) []Item {
	var result []Item
	for _, item := range all {
		if slices.Contains(types, item.Type) {
			result = append(result, item)
		}
	}
	return result
}
