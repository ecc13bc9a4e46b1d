package completion

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/idursun/cypherui/internal/cypher"
)

type SchemaLoadedMsg struct {
	Schema *cypher.Schema
	Err    error
}

// LoadSchema fetches the graph schema in the background.
func LoadSchema(runner cypher.Runner, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		schema, err := runner.Schema(ctx)
		return SchemaLoadedMsg{Schema: schema, Err: err}
	}
}
