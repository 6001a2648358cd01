package mcpserver

import (
	"fmt"
	"strconv"
)

// Argument extraction helpers. Protocol arguments arrive as a generic JSON
// object, so numbers are float64 and every value needs a type check.

func requireString(args map[string]interface{}, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string", key)
	}
	if s == "" {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	return s, nil
}

func stringArg(args map[string]interface{}, key, fallback string) string {
	if raw, ok := args[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return fallback
}

func floatArg(args map[string]interface{}, key string, fallback float64) float64 {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func boolArg(args map[string]interface{}, key string, fallback bool) bool {
	if raw, ok := args[key]; ok {
		if b, ok := raw.(bool); ok {
			return b
		}
	}
	return fallback
}

// stringMapArg extracts an object parameter as a string-to-string map,
// stringifying non-string values so numeric form inputs survive JSON decoding.
func stringMapArg(args map[string]interface{}, key string) (map[string]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing required parameter %q", key)
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an object", key)
	}

	out := make(map[string]string, len(obj))
	for k, v := range obj {
		out[k] = stringifyValue(v)
	}
	return out, nil
}

func stringifyValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
