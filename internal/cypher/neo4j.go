package cypher

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var _ Runner = (*Neo4jRunner)(nil)

// Config holds Neo4j connection configuration
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Neo4jRunner runs queries through the official Neo4j driver.
type Neo4jRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jRunner connects and verifies connectivity.
func NewNeo4jRunner(ctx context.Context, cfg Config) (*Neo4jRunner, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating neo4j driver")
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.WithHintf(errors.Wrapf(err, "connecting to %s", cfg.URI),
			"check [neo4j] in the config file or NEO4J_URI / NEO4J_USER / NEO4J_PASSWORD")
	}

	return &Neo4jRunner{driver: driver, database: cfg.Database}, nil
}

func (r *Neo4jRunner) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *Neo4jRunner) Run(ctx context.Context, query string, params map[string]any) (*Result, error) {
	accessMode := neo4j.AccessModeRead
	if IsWriteQuery(query) {
		accessMode = neo4j.AccessModeWrite
	}
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: r.database, AccessMode: accessMode})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		keys, err := res.Keys()
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}

		rows := make([][]any, 0, len(records))
		for _, record := range records {
			rows = append(rows, record.Values)
		}
		return &Result{Keys: keys, Rows: rows, Summary: summarize(len(rows), summary)}, nil
	}

	var out any
	var err error
	if accessMode == neo4j.AccessModeWrite {
		out, err = session.ExecuteWrite(ctx, work)
	} else {
		out, err = session.ExecuteRead(ctx, work)
	}
	if err != nil {
		return nil, errors.Wrap(err, "running query")
	}
	return out.(*Result), nil
}

func (r *Neo4jRunner) Schema(ctx context.Context) (*Schema, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: r.database, AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	schema := &Schema{}
	var err error
	if schema.Labels, err = collectStrings(ctx, session, "CALL db.labels() YIELD label RETURN label", "label"); err != nil {
		return nil, errors.Wrap(err, "reading labels")
	}
	if schema.RelationshipTypes, err = collectStrings(ctx, session, "CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType", "relationshipType"); err != nil {
		return nil, errors.Wrap(err, "reading relationship types")
	}
	if schema.PropertyKeys, err = collectStrings(ctx, session, "CALL db.propertyKeys() YIELD propertyKey RETURN propertyKey", "propertyKey"); err != nil {
		return nil, errors.Wrap(err, "reading property keys")
	}
	// SHOW FUNCTIONS/PROCEDURES need Neo4j 4.3+; older servers just get fewer suggestions.
	schema.Functions, _ = collectCallables(ctx, session, "SHOW FUNCTIONS YIELD name, signature RETURN name, signature")
	schema.Procedures, _ = collectCallables(ctx, session, "SHOW PROCEDURES YIELD name, signature RETURN name, signature")
	return schema, nil
}

func collectStrings(ctx context.Context, session neo4j.SessionWithContext, query string, key string) ([]string, error) {
	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		var values []string
		for res.Next(ctx) {
			if value, ok := res.Record().Get(key); ok {
				if s, ok := value.(string); ok {
					values = append(values, s)
				}
			}
		}
		return values, res.Err()
	})
	if err != nil {
		return nil, err
	}
	values, _ := out.([]string)
	return values, nil
}

func collectCallables(ctx context.Context, session neo4j.SessionWithContext, query string) ([]Callable, error) {
	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		var callables []Callable
		for res.Next(ctx) {
			record := res.Record()
			name, _ := record.Get("name")
			signature, _ := record.Get("signature")
			callable := Callable{}
			callable.Name, _ = name.(string)
			callable.Signature, _ = signature.(string)
			if callable.Name != "" {
				callables = append(callables, callable)
			}
		}
		return callables, res.Err()
	})
	if err != nil {
		return nil, err
	}
	callables, _ := out.([]Callable)
	return callables, nil
}

type counters interface {
	NodesCreated() int
	NodesDeleted() int
	RelationshipsCreated() int
	RelationshipsDeleted() int
	PropertiesSet() int
	LabelsAdded() int
	LabelsRemoved() int
}

func summarize(rows int, summary neo4j.ResultSummary) string {
	var parts []string
	if summary != nil {
		parts = describeCounters(summary.Counters())
	}
	if len(parts) == 0 || rows > 0 {
		parts = append([]string{pluralize(rows, "row")}, parts...)
	}
	return strings.Join(parts, ", ")
}

func describeCounters(c counters) []string {
	if c == nil {
		return nil
	}
	var parts []string
	add := func(n int, what string, verb string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", verb, pluralize(n, what)))
		}
	}
	add(c.NodesCreated(), "node", "created")
	add(c.NodesDeleted(), "node", "deleted")
	add(c.RelationshipsCreated(), "relationship", "created")
	add(c.RelationshipsDeleted(), "relationship", "deleted")
	add(c.PropertiesSet(), "property", "set")
	add(c.LabelsAdded(), "label", "added")
	add(c.LabelsRemoved(), "label", "removed")
	return parts
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
