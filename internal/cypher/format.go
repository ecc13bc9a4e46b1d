package cypher

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// FormatValue renders a driver value the way Cypher literals look.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case neo4j.Node:
		return formatNode(v)
	case neo4j.Relationship:
		return fmt.Sprintf("[:%s%s]", v.Type, formatPropsSuffix(v.Props))
	case neo4j.Path:
		return formatPath(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, FormatValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		return formatProps(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func formatNode(node neo4j.Node) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, label := range node.Labels {
		b.WriteByte(':')
		b.WriteString(label)
	}
	b.WriteString(formatPropsSuffix(node.Props))
	b.WriteByte(')')
	return b.String()
}

func formatPath(path neo4j.Path) string {
	var b strings.Builder
	for i, node := range path.Nodes {
		if i > 0 && i-1 < len(path.Relationships) {
			b.WriteString("-")
			b.WriteString(FormatValue(path.Relationships[i-1]))
			b.WriteString("->")
		}
		b.WriteString(formatNode(node))
	}
	return b.String()
}

func formatPropsSuffix(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	return " " + formatProps(props)
}

func formatProps(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+FormatValue(props[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Table renders the result as a bordered table followed by the summary line.
func (r *Result) Table() string {
	if r == nil {
		return ""
	}
	if len(r.Keys) == 0 {
		return r.Summary
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(r.Keys...)
	for _, row := range r.Rows {
		cells := make([]string, 0, len(row))
		for _, value := range row {
			cells = append(cells, FormatValue(value))
		}
		t = t.Row(cells...)
	}
	out := t.String()
	if r.Summary != "" {
		out += "\n" + r.Summary
	}
	return out
}
