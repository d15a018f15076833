// Package idcodec converts identifier values into the driver's native
// ObjectID when they are identifier-shaped.
package idcodec

import (
	"math/big"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IsValid reports whether s is a 24 hex character ObjectID.
func IsValid(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}

// FromString returns the ObjectID for s, or false if s is not identifier-shaped.
func FromString(s string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, false
	}

	return id, true
}

// FromBigInt converts i to an ObjectID when its hex form is a valid
// identifier. Otherwise the decimal string form is returned.
func FromBigInt(i *big.Int) any {
	if i == nil {
		return nil
	}

	if id, ok := FromString(i.Text(16)); ok {
		return id
	}

	return i.String()
}

// Convert applies the identifier conversion rules to a single value.
// Strings and *big.Int values are converted, anything else is returned as is.
func Convert(v any) any {
	switch typed := v.(type) {
	case string:
		if id, ok := FromString(typed); ok {
			return id
		}

		return typed
	case *big.Int:
		return FromBigInt(typed)
	case big.Int:
		return FromBigInt(&typed)
	default:
		return v
	}
}
