package react

import (
	"encoding/json"
	"strconv"
	"strings"
)

// defaultInputKey holds bare values that carry no parameter name.
const defaultInputKey = "input"

// inputRule is one step of the format-detection cascade: a predicate
// deciding whether the rule applies and a handler producing the
// parameter map. Each rule is independently testable.
type inputRule struct {
	match func(string) bool
	parse func(string) map[string]any
}

// The cascade, in priority order: strict JSON, key=value list, single
// bare token. Unmatched input falls through to the raw fallback.
var inputRules = []inputRule{
	{match: isJSONInput, parse: parseJSONInput},
	{match: isKeyValueInput, parse: parseKeyValueInput},
	{match: isBareValueInput, parse: parseBareValueInput},
}

// ParseToolInput normalizes a raw Action Input value into a parameter
// map. It accepts JSON objects, quoted strings, key=value lists, and
// bare tokens; anything else degrades to {"input": raw}. A single bare
// token always parses to {"input": token}. It never fails.
func ParseToolInput(raw string) (args map[string]any) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}
	}

	// A failure inside any rule degrades to the raw fallback rather
	// than escaping to the caller.
	defer func() {
		if recover() != nil {
			args = map[string]any{defaultInputKey: raw}
		}
	}()

	for _, rule := range inputRules {
		if rule.match(raw) {
			return rule.parse(raw)
		}
	}
	return map[string]any{defaultInputKey: raw}
}

func isJSONInput(raw string) bool {
	return json.Valid([]byte(raw))
}

// parseJSONInput decodes valid JSON. Objects come back as-is; scalars
// and arrays are wrapped under the default key, so a bare JSON string
// behaves exactly like a bare quoted token.
func parseJSONInput(raw string) map[string]any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return map[string]any{defaultInputKey: raw}
	}
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{defaultInputKey: v}
}

// isKeyValueInput detects formats like: query="search term", limit=5.
func isKeyValueInput(raw string) bool {
	return strings.Contains(raw, "=") &&
		(strings.Contains(raw, ",") || strings.Count(raw, "=") == 1)
}

func parseKeyValueInput(raw string) map[string]any {
	result := make(map[string]any)
	for _, pair := range splitPairs(raw) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue // malformed pair contributes nothing
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		result[key] = coerceValue(strings.TrimSpace(value))
	}
	return result
}

// isBareValueInput detects a single unstructured value.
func isBareValueInput(raw string) bool {
	return !strings.ContainsAny(raw, "{[=")
}

func parseBareValueInput(raw string) map[string]any {
	value, _ := stripQuotes(raw)
	return map[string]any{defaultInputKey: value}
}

// splitPairs splits on commas, treating commas inside a matching
// single- or double-quoted span as literal. Quote characters stay in
// the pair text; stripping happens per value afterward.
func splitPairs(content string) []string {
	var pairs []string
	var current strings.Builder
	inQuotes := false
	var quoteChar rune

	for _, ch := range content {
		switch {
		case !inQuotes && (ch == '"' || ch == '\''):
			inQuotes = true
			quoteChar = ch
		case inQuotes && ch == quoteChar:
			inQuotes = false
		case ch == ',' && !inQuotes:
			if p := strings.TrimSpace(current.String()); p != "" {
				pairs = append(pairs, p)
			}
			current.Reset()
			continue
		}
		current.WriteRune(ch)
	}
	if p := strings.TrimSpace(current.String()); p != "" {
		pairs = append(pairs, p)
	}
	return pairs
}

// coerceValue converts an unquoted value to bool, int, or float where
// the whole token qualifies; everything else stays a string. Quoted
// values are always literal strings.
func coerceValue(value string) any {
	if unquoted, ok := stripQuotes(value); ok {
		return unquoted
	}
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if isDigits(value) {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	if strings.Count(value, ".") == 1 && isDigits(strings.ReplaceAll(value, ".", "")) {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return value
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// stripQuotes removes a matching pair of surrounding single or double
// quotes. The second return reports whether the value was quoted.
func stripQuotes(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1], true
		}
	}
	return s, false
}
