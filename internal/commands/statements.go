package commands

import "strings"

// SplitStatements breaks editor content into the statements it runs, in
// order. A line starting with cmdchar is a console command on its own.
// Consecutive other lines form Cypher, which is split on ';' outside of
// string literals, quoted identifiers and comments.
func SplitStatements(content string, cmdchar string) []string {
	var (
		statements []string
		cypher     []string
	)
	flush := func() {
		statements = append(statements, splitCypher(strings.Join(cypher, "\n"))...)
		cypher = nil
	}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if cmdchar != "" && strings.HasPrefix(trimmed, cmdchar) {
			flush()
			statements = append(statements, trimmed)
			continue
		}
		cypher = append(cypher, line)
	}
	flush()
	return statements
}

func splitCypher(text string) []string {
	var (
		statements []string
		quote      rune
		escaped    bool
		comment    bool
		start      int
	)
	add := func(end int) {
		if statement := strings.TrimSpace(text[start:end]); statement != "" {
			statements = append(statements, statement)
		}
	}
	for i, r := range text {
		switch {
		case comment:
			if r == '\n' {
				comment = false
			}
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case r == '\\' && quote != '`':
				escaped = true
			case r == quote:
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '/' && strings.HasPrefix(text[i+1:], "/"):
			comment = true
		case r == ';':
			add(i)
			start = i + 1
		}
	}
	add(len(text))
	return statements
}
