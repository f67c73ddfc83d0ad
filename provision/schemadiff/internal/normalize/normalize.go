// Package normalize canonicalizes BSON-decoded values so validator documents
// can be compared structurally. The driver decodes nested documents as bson.D
// or bson.M depending on the target type, and the server reports numeric
// values in whatever width the original write used; both differences are
// irrelevant to validator semantics.
package normalize

import (
	"math"

	"go.mongodb.org/mongo-driver/bson"
)

// Value recursively converts v into a canonical form: documents become
// map[string]any, arrays become []any, and integral numbers become int64.
// Whole-number doubles are folded to int64 as well, since the server reports
// bounds like {minimum: 0} as doubles once they round-trip through extended
// JSON.
func Value(v any) any {
	switch val := v.(type) {
	case bson.D:
		doc := make(map[string]any, len(val))
		for _, elem := range val {
			doc[elem.Key] = Value(elem.Value)
		}
		return doc
	case bson.M:
		doc := make(map[string]any, len(val))
		for key, item := range val {
			doc[key] = Value(item)
		}
		return doc
	case map[string]any:
		doc := make(map[string]any, len(val))
		for key, item := range val {
			doc[key] = Value(item)
		}
		return doc
	case bson.A:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = Value(item)
		}
		return arr
	case []any:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = Value(item)
		}
		return arr
	case []string:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = item
		}
		return arr
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return int64(val)
		}
		return val
	default:
		return val
	}
}
