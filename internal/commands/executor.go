// Package commands executes what the user submits from the editor or a deep
// link: console commands prefixed with the command character, or Cypher.
package commands

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/cockroachdb/errors"
	"github.com/idursun/cypherui/internal/browser"
	"github.com/idursun/cypherui/internal/config"
	"github.com/idursun/cypherui/internal/logging"
	"github.com/idursun/cypherui/internal/params"
	"github.com/idursun/cypherui/internal/ui/common"
	appcontext "github.com/idursun/cypherui/internal/ui/context"
	"github.com/idursun/cypherui/internal/ui/intents"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrSkipped        = errors.New("skipped after an earlier statement failed")
	ErrURLNotAllowed  = errors.New("host not allowed for deep links")
)

type Executor struct {
	context *appcontext.MainContext
	openURL func(string) error
}

type Option func(*Executor)

// WithURLOpener replaces the function used to open web pages.
func WithURLOpener(open func(string) error) Option {
	return func(e *Executor) {
		e.openURL = open
	}
}

func NewExecutor(ctx *appcontext.MainContext, opts ...Option) *Executor {
	e := &Executor{context: ctx, openURL: browser.Open}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsConsoleCommand reports whether command is addressed to the console
// rather than the database.
func (e *Executor) IsConsoleCommand(command string) bool {
	return strings.HasPrefix(strings.TrimSpace(command), e.context.CmdChar())
}

// Execute returns the commands that run content in the background. Content
// is split into statements (see SplitStatements) which run one after
// another. Each statement gets its own CommandRunningMsg and
// CommandCompletedMsg; once one fails the rest complete with ErrSkipped.
// :clear and :history only emit the intent they stand for.
func (e *Executor) Execute(content string, source intents.CommandSource) tea.Cmd {
	statements := SplitStatements(content, e.context.CmdChar())
	if len(statements) == 0 {
		return nil
	}

	var (
		running []tea.Cmd
		steps   []tea.Cmd
		failed  bool
	)
	for _, statement := range statements {
		if cmd := e.intentFor(statement); cmd != nil {
			steps = append(steps, cmd)
			continue
		}

		id := e.context.NextCommandID()
		logging.Logger.Infow("executing command", "id", id, "source", source, "console", e.IsConsoleCommand(statement))
		running = append(running, func() tea.Msg {
			return common.CommandRunningMsg{ID: id, Command: statement, Source: source}
		})
		steps = append(steps, func() tea.Msg {
			if failed {
				return common.CommandCompletedMsg{ID: id, Command: statement, Err: ErrSkipped}
			}
			output, err := e.run(statement, source)
			if err != nil {
				failed = true
				logging.Logger.Warnw("command failed", "id", id, "error", err)
			}
			return common.CommandCompletedMsg{ID: id, Command: statement, Output: output, Err: err}
		})
	}
	return tea.Batch(append(running, tea.Sequence(steps...))...)
}

func (e *Executor) intentFor(statement string) tea.Cmd {
	if !e.IsConsoleCommand(statement) {
		return nil
	}
	name, _ := splitConsoleCommand(statement, e.context.CmdChar())
	switch name {
	case "clear":
		return intents.Invoke(intents.ClearMessages{})
	case "history":
		return intents.Invoke(intents.CommandHistoryToggle{})
	}
	return nil
}

func (e *Executor) run(command string, source intents.CommandSource) (string, error) {
	if !e.IsConsoleCommand(command) {
		return e.runCypher(command)
	}
	name, arg := splitConsoleCommand(command, e.context.CmdChar())
	switch name {
	case "play":
		return e.play(arg, source)
	case "param":
		return e.param(arg)
	case "params":
		return e.params(arg)
	default:
		return "", errors.Wrapf(ErrUnknownCommand, "%s%s", e.context.CmdChar(), name)
	}
}

func splitConsoleCommand(command string, cmdchar string) (string, string) {
	rest := strings.TrimPrefix(strings.TrimSpace(command), cmdchar)
	name, arg, _ := strings.Cut(rest, " ")
	return strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(arg)
}

func (e *Executor) play(arg string, source intents.CommandSource) (string, error) {
	if browser.IsURL(arg) {
		allowed := e.context.Config.DeepLink.AllowedHosts
		if source == intents.SourceURL && !browser.HostAllowed(arg, allowed) {
			return "", errors.WithHintf(errors.Wrapf(ErrURLNotAllowed, "%s", arg),
				"add the host to [deeplink] allowed_hosts or run %splay from the editor", e.context.CmdChar())
		}
		if err := e.openURL(arg); err != nil {
			return "", err
		}
		return "opened " + arg, nil
	}
	return Guide(arg)
}

func (e *Executor) param(arg string) (string, error) {
	name, value, err := params.ParseParam(arg)
	if err != nil {
		return "", err
	}
	e.context.Params.Set(name, value)
	return e.context.Params.Format(), nil
}

func (e *Executor) params(arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "":
		return e.context.Params.Format(), nil
	case "clear":
		e.context.Params.Clear()
		return e.context.Params.Format(), nil
	}
	values, err := params.ParseParams(arg)
	if err != nil {
		return "", err
	}
	e.context.Params.SetAll(values)
	return e.context.Params.Format(), nil
}

func (e *Executor) runCypher(query string) (string, error) {
	ctx := context.Background()
	if timeout := config.GetQueryTimeout(e.context.Config); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	started := time.Now()
	result, err := e.context.Runner.Run(ctx, query, e.context.Params.All())
	if err != nil {
		return "", err
	}
	logging.Logger.Debugw("query finished", "rows", len(result.Rows), "elapsed", time.Since(started))
	return result.Table(), nil
}
