package params

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

var ErrMissingName = errors.New("parameter name is missing")

// ParseParam parses "name => value" or "name: value". The value is read as a
// YAML flow value so Cypher literals such as 1, 'a', [1, 2] and {a: 1} work.
func ParseParam(arg string) (string, any, error) {
	arg = strings.TrimSpace(arg)
	name, raw, found := strings.Cut(arg, "=>")
	if !found {
		name, raw, found = strings.Cut(arg, ":")
	}
	if !found {
		return "", nil, errors.Newf("expected name => value, got %q", arg)
	}
	name = strings.Trim(strings.TrimSpace(name), "`")
	if name == "" {
		return "", nil, ErrMissingName
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, errors.Newf("value for parameter %q is missing", name)
	}
	value, err := parseValue(raw)
	if err != nil {
		return "", nil, errors.Wrapf(err, "parameter %q", name)
	}
	return name, value, nil
}

// ParseParams parses a map literal such as {a: 1, b: 'x'}.
func ParseParams(arg string) (map[string]any, error) {
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(arg, "{") || !strings.HasSuffix(arg, "}") {
		return nil, errors.Newf("expected a map like {name: value}, got %q", arg)
	}
	value, err := parseValue(arg)
	if err != nil {
		return nil, err
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, errors.Newf("expected a map like {name: value}, got %q", arg)
	}
	return m, nil
}

func parseValue(raw string) (any, error) {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return nil, errors.Wrap(err, "invalid value")
	}
	return normalize(value), nil
}

// normalize converts yaml's int to int64 which is what the driver sends for
// Cypher integers.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case []any:
		for i := range v {
			v[i] = normalize(v[i])
		}
		return v
	case map[string]any:
		for k := range v {
			v[k] = normalize(v[k])
		}
		return v
	default:
		return v
	}
}
