package local

import (
	"fmt"
	"math"

	"github.com/TheTrio/EspressoPlayground/backend"
)

func objectSchema(properties map[string]any, required ...string) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		schema["required"] = req
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func integerProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

// stringArg reads a string argument. A missing optional argument yields "".
func stringArg(args map[string]any, key string, required bool) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("%w: %q is required", backend.ErrInvalidArgs, key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", backend.ErrInvalidArgs, key, v)
	}
	return s, nil
}

// intArg reads an integer argument, accepting the float64 JSON decoding
// produces. A missing argument yields def.
func intArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %q must be an integer, got %v", backend.ErrInvalidArgs, key, n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: %q must be an integer, got %T", backend.ErrInvalidArgs, key, v)
}
