package cypher

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Disconnected is used when the database could not be reached at startup.
// Console commands still work; Cypher reports the original connection error.
type Disconnected struct {
	Cause error
}

var _ Runner = Disconnected{}

func (d Disconnected) Run(context.Context, string, map[string]any) (*Result, error) {
	return nil, d.err()
}

func (d Disconnected) Schema(context.Context) (*Schema, error) {
	return nil, d.err()
}

func (d Disconnected) err() error {
	if d.Cause == nil {
		return errors.New("not connected")
	}
	return errors.Wrap(d.Cause, "not connected")
}

func (d Disconnected) Close(context.Context) error {
	return nil
}
