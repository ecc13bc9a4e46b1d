// Package urlcommand turns deep-link URLs into editor intents.
//
// A URL carries a command in its query string:
//
//	?cmd=play&arg=movies        runs ":play movies"
//	?cmd=edit&arg=MATCH (n)&arg=RETURN n
//	                            loads both lines into the editor
//	?cmd=param&arg=x => 1       loads ":param x => 1" into the editor
//	?cmd=params&arg={a: 1}      loads ":params {a: 1}" into the editor
//
// Any other cmd is reported as unsupported.
package urlcommand

import (
	"net/url"
	"strings"

	"github.com/idursun/cypherui/internal/ui/intents"
)

const (
	CmdPlay   = "play"
	CmdEdit   = "edit"
	CmdParam  = "param"
	CmdParams = "params"
)

// Interpret maps a URL to the intent it asks for. It reports false when the
// URL carries no cmd.
func Interpret(rawURL string, cmdchar string) (intents.Intent, bool) {
	cmd, args, ok := ParseArgs(rawURL)
	if !ok {
		return nil, false
	}

	switch cmd {
	case CmdPlay:
		return intents.ExecuteCommand{
			Command: consoleCommand(cmdchar, CmdPlay, strings.Join(args, "")),
			Source:  intents.SourceURL,
		}, true
	case CmdEdit:
		return intents.SetContent{Message: strings.Join(args, "\n")}, true
	case CmdParam, CmdParams:
		return intents.SetContent{Message: consoleCommand(cmdchar, cmd, strings.Join(args, ""))}, true
	default:
		return intents.UnsupportedURLCommand{Command: cmd}, true
	}
}

// ParseArgs extracts the first cmd value and every arg value, in order, from
// the query part of rawURL.
func ParseArgs(rawURL string) (cmd string, args []string, ok bool) {
	rawURL = strings.TrimSpace(rawURL)
	_, query, found := strings.Cut(rawURL, "?")
	if !found {
		return "", nil, false
	}
	query, _, _ = strings.Cut(query, "#")

	values := parseQuery(query)
	cmds := values["cmd"]
	if len(cmds) == 0 || cmds[0] == "" {
		return "", nil, false
	}
	return cmds[0], values["arg"], true
}

// parseQuery splits on '&' only. url.ParseQuery drops any pair containing
// ';', which is common in Cypher.
func parseQuery(query string) map[string][]string {
	values := make(map[string][]string)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		values[unescape(key)] = append(values[unescape(key)], unescape(value))
	}
	return values
}

func unescape(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}

func consoleCommand(cmdchar string, name string, arg string) string {
	if arg == "" {
		return cmdchar + name
	}
	return cmdchar + name + " " + arg
}
