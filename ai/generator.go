// Package ai wraps the text-generation providers behind a single prompt-in /
// text-out interface. Callers never depend on a concrete provider; a nil
// Generator means "not configured" and every caller falls back to its
// deterministic path.
package ai

import (
	"context"
	"strconv"
	"strings"
)

// Generator produces text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ExtractJSONObject returns the first brace-delimited substring of raw,
// tolerating markdown fences and surrounding prose. Returns raw trimmed when
// no object is found so the caller's json.Unmarshal produces the real error.
func ExtractJSONObject(raw string) string {
	return extractDelimited(stripFences(raw), '{', '}')
}

// ExtractJSONArray is ExtractJSONObject for top-level arrays.
func ExtractJSONArray(raw string) string {
	return extractDelimited(stripFences(raw), '[', ']')
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func extractDelimited(raw string, open, close byte) string {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// CoerceInt converts loosely typed JSON values to an int. Providers sometimes
// return scores as floats or quoted numbers.
func CoerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val + 0.5), true
	case int:
		return val, true
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		if trimmed == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(f + 0.5), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// CoerceString converts loosely typed JSON values to a trimmed string.
func CoerceString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
