package commandstructure

import (
	"fmt"
	"strings"
)

// Step parameters come straight from the decoded YAML, so a number may be an
// int, an int64 or a float64 and a flag may be quoted. The getters fall back
// to def for a missing key or a value of the wrong kind.

func GetStringParam(params map[string]any, key string, def string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return def
}

func GetIntParam(params map[string]any, key string, def int) int {
	switch n := params[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// GetBoolParam also takes "true" and "false" in any case
func GetBoolParam(params map[string]any, key string, def bool) bool {
	switch b := params[key].(type) {
	case bool:
		return b
	case string:
		if v := strings.ToLower(strings.TrimSpace(b)); v == "true" || v == "false" {
			return v == "true"
		}
	}
	return def
}

// ValidateRequiredParams reports every missing key at once
func ValidateRequiredParams(params map[string]any, required []string) error {
	var missing []string
	for _, key := range required {
		if _, ok := params[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required parameter(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
