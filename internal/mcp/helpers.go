package mcpserver

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// parseJSON parses a JSON string into the target type.
func parseJSON(data string, target any) error {
	return json.Unmarshal([]byte(data), target)
}

// getInt reads a numeric argument. JSON numbers arrive as float64; they are
// rounded to whole grid units.
func getInt(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(math.Round(v)), true
	case int:
		return v, true
	}
	return 0, false
}

func requireInt(args map[string]any, key string) (int, error) {
	v, ok := getInt(args, key)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func requireString(args map[string]any, key string) (string, error) {
	v, _ := args[key].(string)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// splitIDs splits a comma-separated id list, dropping blanks.
func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
