package ai

import "strings"

// RepairJSON attempts to repair a truncated JSON string by closing open quotes
// and brackets. It is a heuristic, not a parser: it does not recover from
// structurally invalid JSON, and callers must re-attempt parsing and be
// prepared for it to still fail.
func RepairJSON(s string) string {
	if s == "" {
		return s
	}

	clean := strings.TrimSpace(s)

	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(clean); i++ {
		c := clean[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString:
			switch c {
			case '{':
				stack = append(stack, '}')
			case '[':
				stack = append(stack, ']')
			case '}', ']':
				if len(stack) > 0 && stack[len(stack)-1] == c {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	repaired := clean
	// If we stopped mid-string, close it.
	if inString {
		repaired += `"`
	}

	// Handle dangling structure.
	repaired = strings.TrimSpace(repaired)
	if strings.HasSuffix(repaired, ":") {
		repaired += " null"
	} else if strings.HasSuffix(repaired, ",") {
		repaired = strings.TrimSpace(repaired[:len(repaired)-1])
	}

	// Close all open containers in LIFO order.
	for i := len(stack) - 1; i >= 0; i-- {
		repaired += string(stack[i])
	}

	return repaired
}
