package status

import (
	"encoding/json"
	"strings"
)

// FormatDescription flattens a description JSON subtree (string, array, or
// object) into text with embedded section-sign format codes. The second
// return value is false when raw is empty, matching the "absence yields
// None" invariant.
func FormatDescription(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var node any
	if err := json.Unmarshal(raw, &node); err != nil {
		return "", false
	}
	var b strings.Builder
	formatNode(&b, node)
	return b.String(), true
}

func formatNode(b *strings.Builder, node any) {
	switch n := node.(type) {
	case string:
		b.WriteString(n)
	case []any:
		for _, item := range n {
			formatNode(b, item)
		}
	case map[string]any:
		formatObject(b, n)
	}
}

// formatObject emits an object's format flags and color, then its text,
// then recurses into extra — in that order, regardless of how the fields
// were serialized in the source document.
func formatObject(b *strings.Builder, obj map[string]any) {
	if boolField(obj, "obfuscated") {
		b.WriteString("§k")
	}
	if boolField(obj, "bold") {
		b.WriteString("§l")
	}
	if boolField(obj, "strikethrough") {
		b.WriteString("§m")
	}
	if boolField(obj, "underline") {
		b.WriteString("§n")
	}
	if boolField(obj, "italic") {
		b.WriteString("§o")
	}
	if color, ok := obj["color"].(string); ok {
		b.WriteString("§" + ColorCode(color))
	}
	if text, ok := obj["text"].(string); ok {
		b.WriteString(text)
	}
	if extra, ok := obj["extra"].([]any); ok {
		for _, item := range extra {
			formatNode(b, item)
		}
	}
}

func boolField(obj map[string]any, key string) bool {
	v, ok := obj[key].(bool)
	return ok && v
}
