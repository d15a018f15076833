package query

import (
	"reflect"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"docmapper/internal/convert"
)

// Logical operators whose value is a list of criteria documents.
var logicalOperators = map[string]struct{}{
	"$or":  {},
	"$and": {},
	"$nor": {},
}

func isLogical(key string) bool {
	_, ok := logicalOperators[key]
	return ok
}

func isOperator(key string) bool {
	return strings.HasPrefix(key, "$")
}

// isNative reports whether v is already in the driver's own representation
// and must not be reinterpreted.
func isNative(v any) bool {
	switch v.(type) {
	case bson.Raw, bson.RawValue, bson.RawArray, bson.Marshaler, bson.ValueMarshaler,
		convert.DBRef, *convert.DBRef, bson.DBPointer:
		return true
	default:
		return false
	}
}

// asDocument returns v as an ordered document. Maps are ordered by key.
func asDocument(v any) (bson.D, bool) {
	switch doc := v.(type) {
	case bson.D:
		return doc, true
	case bson.M:
		return sortedDocument(doc), true
	case map[string]any:
		return sortedDocument(doc), true
	default:
		return nil, false
	}
}

func sortedDocument(m map[string]any) bson.D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	doc := make(bson.D, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: m[k]})
	}

	return doc
}

// asOperatorDocument returns v if it is a non-empty document made of
// operator keys only, such as {$ne: 1} or {$gt: 1, $lt: 5}.
func asOperatorDocument(v any) (bson.D, bool) {
	doc, ok := asDocument(v)
	if !ok || len(doc) == 0 {
		return nil, false
	}

	for _, e := range doc {
		if !isOperator(e.Key) {
			return nil, false
		}
	}

	return doc, true
}

// asList returns the elements of v if it is a generic list.
func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case bson.A:
		return list, true
	case []any:
		return list, true
	case []bson.D:
		out := make([]any, len(list))
		for i := range list {
			out[i] = list[i]
		}

		return out, true
	case []bson.M:
		out := make([]any, len(list))
		for i := range list {
			out[i] = list[i]
		}

		return out, true
	default:
		return nil, false
	}
}

// typedList returns the elements of a typed slice such as []string or
// []*Reference. Byte slices are values, not lists.
func typedList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

// put sets key in doc, replacing an earlier value for the same key.
func put(doc bson.D, key string, value any) bson.D {
	for i := range doc {
		if doc[i].Key == key {
			doc[i].Value = value
			return doc
		}
	}

	return append(doc, bson.E{Key: key, Value: value})
}
