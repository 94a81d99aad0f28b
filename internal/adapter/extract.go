package adapter

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"
)

// EvalAny returns the raw value selected by the JMESPath expression.
// It is safe to pass any decoded JSON (map[string]any, []any, etc.)
// It will return nil and no error if the expression does not match anything.
func EvalAny(expression string, payload map[string]any) (any, error) {
	v, err := jmespath.Search(expression, payload)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return v, nil
}

// ExtractText shapes an upstream API response into tool output text. The
// expression selects the interesting part; strings pass through, anything
// else is JSON-encoded. An empty expression returns the whole payload as
// JSON; a non-matching expression returns "".
func ExtractText(expression string, payload map[string]any) (string, error) {
	var v any = payload
	if expression != "" {
		var err error
		v, err = EvalAny(expression, payload)
		if err != nil {
			return "", err
		}
	}
	if v == nil {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
