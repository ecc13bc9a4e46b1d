package test

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/idursun/cypherui/internal/cypher"
	"github.com/stretchr/testify/assert"
)

// ExpectedQuery is a query FakeRunner is prepared to answer.
type ExpectedQuery struct {
	Query  string
	Params map[string]any
	result *cypher.Result
	err    error
	called bool
}

func (e *ExpectedQuery) SetResult(result *cypher.Result) *ExpectedQuery {
	e.result = result
	return e
}

func (e *ExpectedQuery) SetError(err error) *ExpectedQuery {
	e.err = err
	return e
}

// WithParams makes the expectation also assert the parameters sent along.
func (e *ExpectedQuery) WithParams(params map[string]any) *ExpectedQuery {
	e.Params = params
	return e
}

// FakeRunner is a cypher.Runner that answers only the queries it was told
// to expect, in order.
type FakeRunner struct {
	t        *testing.T
	mu       sync.Mutex
	expected []*ExpectedQuery
	schema   *cypher.Schema
	closed   bool
}

var _ cypher.Runner = (*FakeRunner)(nil)

func NewFakeRunner(t *testing.T) *FakeRunner {
	return &FakeRunner{t: t, schema: &cypher.Schema{}}
}

func (r *FakeRunner) Expect(query string) *ExpectedQuery {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := &ExpectedQuery{Query: query, result: &cypher.Result{}}
	r.expected = append(r.expected, e)
	return e
}

func (r *FakeRunner) SetSchema(schema *cypher.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schema = schema
}

func (r *FakeRunner) Run(_ context.Context, query string, params map[string]any) (*cypher.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.expected {
		if e.called {
			continue
		}
		if e.Query != query {
			break
		}
		e.called = true
		if e.Params != nil {
			assert.Equal(r.t, e.Params, params, "parameters for %q", query)
		}
		return e.result, e.err
	}
	r.t.Errorf("unexpected query: %q", query)
	return nil, errors.Newf("unexpected query: %q", query)
}

func (r *FakeRunner) Schema(context.Context) (*cypher.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.schema, nil
}

func (r *FakeRunner) Close(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *FakeRunner) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Verify fails the test for every expected query that never ran.
func (r *FakeRunner) Verify() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.expected {
		if !e.called {
			r.t.Errorf("expected query was not run: %q", e.Query)
		}
	}
}
