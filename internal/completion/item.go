// Package completion provides autocomplete candidates for the query editor.
package completion

import "strings"

type Type string

const (
	TypeKeyword          Type = "keyword"
	TypeLabel            Type = "label"
	TypeRelationshipType Type = "relationshipType"
	TypePropertyKey      Type = "propertyKey"
	TypeFunction         Type = "function"
	TypeProcedure        Type = "procedure"
	TypeVariable         Type = "variable"
	TypeParameter        Type = "parameter"
	TypeConsoleCommand   Type = "consoleCommand"
)

// Item is a single completion candidate. View is what the popup shows and
// what filtering matches against; Content is what gets inserted.
type Item struct {
	Type    Type
	View    string
	Content string
	Postfix string
}

// GetText returns the text to insert for item. Procedure and function names
// are stored backtick-quoted, and the quotes are dropped on insertion.
func GetText(item Item) string {
	switch item.Type {
	case TypeProcedure, TypeFunction:
		content := strings.TrimPrefix(item.Content, "`")
		return strings.TrimSuffix(content, "`")
	default:
		return item.Content
	}
}
