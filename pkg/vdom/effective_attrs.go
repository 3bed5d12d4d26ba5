package vdom

import (
	"fmt"
	"strconv"
)

// EffectiveAttrs returns the string attributes that should be present on the
// client DOM for the given node. Event handlers and internal props (prefixed
// with "_") are omitted. Boolean true renders as an empty value and false
// omits the attribute.
func EffectiveAttrs(node *VNode) map[string]string {
	if node == nil || node.Props == nil {
		return nil
	}

	attrs := make(map[string]string, len(node.Props))
	for key, value := range node.Props {
		if value == nil || key == "" || key[0] == '_' || isEventHandler(key) {
			continue
		}
		if s, ok := attrValueToString(value); ok {
			attrs[key] = s
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func attrValueToString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if !v {
			return "", false
		}
		return "", true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
