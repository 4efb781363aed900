package internal

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Structured values recovered from response bodies are plain encoding/json
// trees decoded with UseNumber: nil, bool, json.Number, string, []any and
// map[string]any. The helpers below are the only place that switches on
// that shape, so the pipeline stages never type-assert directly.

// asSequence returns v as a JSON array.
func asSequence(v any) ([]any, bool) {
	seq, ok := v.([]any)
	return seq, ok
}

// asString returns v as a JSON string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asBool returns v as a JSON boolean.
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt64 returns v as an integral number. Numbers with a fractional part
// and non-numeric values are rejected.
func asInt64(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// asMicros interprets v as a count of microseconds since the Unix epoch.
// Captures carry timestamps both as bare numbers and as decimal strings,
// so both are accepted.
func asMicros(v any) (int64, bool) {
	if i, ok := asInt64(v); ok {
		return i, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// firstString walks v depth-first and returns the first non-empty string it
// reaches. Response cells nest their payload several arrays deep, so this is
// how "the innermost string" is read without knowing the exact layout.
func firstString(v any) (string, bool) {
	switch node := v.(type) {
	case string:
		if node != "" {
			return node, true
		}
	case []any:
		for _, el := range node {
			if s, ok := firstString(el); ok {
				return s, true
			}
		}
	case map[string]any:
		for _, k := range sortedKeys(node) {
			if s, ok := firstString(node[k]); ok {
				return s, true
			}
		}
	}
	return "", false
}

// parseValue decodes a single JSON value, preserving numbers exactly.
func parseValue(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// sortedKeys keeps traversal order deterministic for mappings.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
