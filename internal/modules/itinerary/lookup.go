package itinerary

import "encoding/json"

// Tolerant accessors for LLM-shaped maps. Missing keys and wrong types yield
// zero values at every access point; a malformed fragment degrades, it never
// panics.

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getNumber(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	}
	return 0
}

// getMapSlice normalizes a []any-of-objects field (how json.Unmarshal shapes
// arrays) into []map[string]any, skipping non-object entries.
func getMapSlice(m map[string]any, key string) []map[string]any {
	switch v := m[key].(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

func getStringSlice(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
