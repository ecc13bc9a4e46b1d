package test

import (
	"reflect"

	tea "charm.land/bubbletea/v2"
)

type updater interface {
	Update(msg tea.Msg) tea.Cmd
}

const maxSimulatedMessages = 500

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// SimulateModel runs cmd and feeds every message it produces back into
// model, breadth first, until no more commands are returned. Batched and
// sequenced commands are expanded.
func SimulateModel(model updater, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for processed := 0; len(queue) > 0 && processed < maxSimulatedMessages; processed++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if cmds, ok := expand(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		if msg == nil {
			continue
		}
		queue = append(queue, model.Update(msg))
	}
}

// expand unwraps tea.BatchMsg and the unexported sequence message, both of
// which are slices of commands.
func expand(msg tea.Msg) ([]tea.Cmd, bool) {
	if batch, ok := msg.(tea.BatchMsg); ok {
		return batch, true
	}
	if msg == nil {
		return nil, false
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, v.Len())
	for i := range v.Len() {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
			cmds = append(cmds, c)
		}
	}
	return cmds, true
}

// Messages runs cmd and returns the messages it produces without feeding
// them anywhere. Batches are flattened.
func Messages(cmd tea.Cmd) []tea.Msg {
	var result []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if cmds, ok := expand(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		if msg != nil {
			result = append(result, msg)
		}
	}
	return result
}
