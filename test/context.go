package test

import (
	"github.com/idursun/cypherui/internal/config"
	"github.com/idursun/cypherui/internal/cypher"
	"github.com/idursun/cypherui/internal/params"
	"github.com/idursun/cypherui/internal/ui/context"
)

// NewTestConfig returns the default configuration with expiring flash
// messages turned off so simulated models never wait on timers.
func NewTestConfig() *config.Config {
	cfg, err := config.LoadDefault()
	if err != nil {
		panic(err)
	}
	cfg.UI.FlashMessageDisplaySeconds = 0
	cfg.DeepLink.Listen = ""
	return cfg
}

func NewTestContext(runner cypher.Runner) *context.MainContext {
	return context.NewMainContext(NewTestConfig(), runner, params.NewStore(), "")
}
