// Package convert turns domain values into values the driver can store:
// enums become their names and references become DBRefs.
package convert

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"

	"docmapper/internal/entity"
	"docmapper/internal/idcodec"
)

// DBRef is the reference descriptor stored in place of an associated document.
type DBRef struct {
	Collection string `bson:"$ref"`
	ID         any    `bson:"$id"`
}

// String returns "collection/id".
func (r DBRef) String() string {
	return fmt.Sprintf("%s/%v", r.Collection, r.ID)
}

// Converter converts values for storage. Its zero value is not usable; use New.
type Converter struct {
	registry *entity.Registry
}

// New creates a Converter resolving referenced entities through registry.
func New(registry *entity.Registry) *Converter {
	return &Converter{registry: registry}
}

// IsEnum reports whether v is an enum value: a named integer type with a
// String method, the shape produced by stringer. time.Duration and
// time.Month-like types from the standard library are excluded.
func IsEnum(v any) bool {
	if v == nil {
		return false
	}

	if _, ok := v.(fmt.Stringer); !ok {
		return false
	}

	t := reflect.TypeOf(v)
	if t.Name() == "" || t.PkgPath() == "time" {
		return false
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// ToMongoType converts a simple value. Enums become their names, lists are
// converted element-wise; everything else is returned unchanged.
func (c *Converter) ToMongoType(v any) any {
	if IsEnum(v) {
		return v.(fmt.Stringer).String()
	}

	switch typed := v.(type) {
	case bson.A:
		return bson.A(lo.Map(typed, func(item any, _ int) any { return c.ToMongoType(item) }))
	case []any:
		return lo.Map(typed, func(item any, _ int) any { return c.ToMongoType(item) })
	}

	return v
}

// ToDBRef builds a reference for source, the value of a reference property.
//
// source may be an instance of the referenced entity (struct, bson.D, bson.M)
// or a bare identifier. A document always stands for one entity; maps of
// references are split into entries by the caller. An existing DBRef is returned unchanged and nil stays
// nil. The identifier is run through the identifier conversion.
func (c *Converter) ToDBRef(source any, prop *entity.PersistentProperty) any {
	switch typed := source.(type) {
	case nil:
		return nil
	case DBRef, *DBRef, bson.DBPointer:
		return source
	case bson.D, bson.M, map[string]any:
		target, ok := prop.Entity()
		if !ok {
			return source
		}

		id, ok := target.IDValue(typed)
		if !ok {
			return source
		}

		return DBRef{Collection: target.Collection, ID: idcodec.Convert(id)}
	}

	if rv := reflect.ValueOf(source); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	if e, ok := c.registry.EntityFor(source); ok {
		if id, ok := e.IDValue(source); ok {
			return DBRef{Collection: e.Collection, ID: idcodec.Convert(id)}
		}
	}

	// A bare identifier: the collection comes from the property type.
	if target, ok := prop.Entity(); ok {
		return DBRef{Collection: target.Collection, ID: idcodec.Convert(source)}
	}

	return source
}
