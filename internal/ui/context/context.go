package context

import (
	"sync/atomic"

	"github.com/idursun/cypherui/internal/config"
	"github.com/idursun/cypherui/internal/cypher"
	"github.com/idursun/cypherui/internal/params"
)

// MainContext is shared by every model of the UI.
type MainContext struct {
	Config   *config.Config
	Runner   cypher.Runner
	Params   *params.Store
	StartURL string

	commandID atomic.Int64
}

func NewMainContext(cfg *config.Config, runner cypher.Runner, store *params.Store, startURL string) *MainContext {
	if cfg == nil {
		cfg = config.Current
	}
	if store == nil {
		store = params.NewStore()
	}
	if runner == nil {
		runner = cypher.Disconnected{}
	}
	return &MainContext{
		Config:   cfg,
		Runner:   runner,
		Params:   store,
		StartURL: startURL,
	}
}

func (ctx *MainContext) CmdChar() string {
	return ctx.Config.CmdChar()
}

// NextCommandID returns a new id for correlating running and completed
// command messages. Ids start at 1 so that 0 can mean "not tracked".
func (ctx *MainContext) NextCommandID() int {
	return int(ctx.commandID.Add(1))
}
