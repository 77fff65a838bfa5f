package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseVariables reads key=value pairs. Values are decoded as JSON
// and kept as plain strings when they are not valid JSON.
func parseVariables(pairs []string) (map[string]any, error) {
	variables := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid variable %q: expected key=value", pair)
		}

		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			decoded = value
		}
		variables[key] = decoded
	}

	return variables, nil
}
