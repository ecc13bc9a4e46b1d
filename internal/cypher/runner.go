package cypher

import (
	"context"
	"regexp"
)

// Runner executes Cypher against a graph.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*Result, error)
	Schema(ctx context.Context) (*Schema, error)
	Close(ctx context.Context) error
}

// Result is a fully collected query result.
type Result struct {
	Keys    []string
	Rows    [][]any
	Summary string
}

// Callable is a function or procedure exposed by the database.
type Callable struct {
	Name      string
	Signature string
}

// Schema is what completion needs to know about the graph.
type Schema struct {
	Labels            []string
	RelationshipTypes []string
	PropertyKeys      []string
	Functions         []Callable
	Procedures        []Callable
}

var updateClause = regexp.MustCompile(`(?i)\b(CREATE|MERGE|SET|DELETE|REMOVE|DROP|DETACH|LOAD\s+CSV|FOREACH)\b`)

// IsWriteQuery reports whether the query contains an updating clause. The
// check is lexical, so a keyword inside a string literal also counts.
func IsWriteQuery(query string) bool {
	return updateClause.MatchString(query)
}
