// Package document holds the JSON-like value model read by the query engine
// and the decoders that produce it.
//
// A document value is one of: nil (null), bool, a number (any Go numeric kind
// or json.Number), string, []any, *Object or map[string]any. *Object keeps
// member order from the source; map[string]any is visited in sorted key order
// so that every traversal is deterministic.
package document

import (
	"maps"
	"slices"
)

// IsObject reports whether v is an object value.
func IsObject(v any) bool {
	switch v.(type) {
	case *Object, map[string]any:
		return true
	default:
		return false
	}
}

// Lookup returns the member named key when v is an object.
func Lookup(v any, key string) (any, bool) {
	switch current := v.(type) {
	case *Object:
		return current.Get(key)
	case map[string]any:
		value, ok := current[key]
		return value, ok
	default:
		return nil, false
	}
}

// Members lists the members of an object value in traversal order.
// ok is false when v is not an object. The returned slice must not be modified.
func Members(v any) (members []Member, ok bool) {
	switch current := v.(type) {
	case *Object:
		if current == nil {
			return nil, true
		}
		return current.members, true
	case map[string]any:
		keys := sortedKeys(current)
		members = make([]Member, len(keys))
		for i, k := range keys {
			members[i] = Member{Key: k, Value: current[k]}
		}
		return members, true
	default:
		return nil, false
	}
}

// Len returns the member count of an object or the element count of an array.
func Len(v any) (int, bool) {
	switch current := v.(type) {
	case *Object:
		return current.Len(), true
	case map[string]any:
		return len(current), true
	case []any:
		return len(current), true
	default:
		return 0, false
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
