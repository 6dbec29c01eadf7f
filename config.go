package forge

import "strings"

// Config values are stored verbatim from interactive edits or decoded
// YAML/JSON payloads, so numeric fields may arrive as int, int64, or
// float64 depending on the decoder. These accessors normalize reads with a
// fallback default; they never mutate the node.

// ConfigString returns a non-empty trimmed string value or def.
func (n *Node) ConfigString(key, def string) string {
	if n.Config != nil {
		if v, ok := n.Config[key].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return def
}

// ConfigFloat returns a numeric value as float64 or def.
func (n *Node) ConfigFloat(key string, def float64) float64 {
	if n.Config == nil {
		return def
	}
	switch v := n.Config[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// ConfigInt returns a numeric value as int or def.
func (n *Node) ConfigInt(key string, def int) int {
	if n.Config == nil {
		return def
	}
	switch v := n.Config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// ConfigBool returns a boolean value or def.
func (n *Node) ConfigBool(key string, def bool) bool {
	if n.Config == nil {
		return def
	}
	if v, ok := n.Config[key].(bool); ok {
		return v
	}
	return def
}

// ConfigStrings returns a non-empty string list or def. Decoded payloads
// deliver lists as []any; string elements are kept, the rest dropped.
func (n *Node) ConfigStrings(key string, def []string) []string {
	if n.Config == nil {
		return def
	}
	switch v := n.Config[key].(type) {
	case []string:
		if len(v) > 0 {
			return v
		}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
