package entity

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"docmapper/internal/common"
)

// Tag keys read by the reflection builder.
const (
	TagBSON = "bson"
	TagODM  = "odm"
)

var simpleStructTypes = map[reflect.Type]struct{}{
	reflect.TypeFor[time.Time]():       {},
	reflect.TypeFor[big.Int]():         {},
	reflect.TypeFor[big.Float]():       {},
	reflect.TypeFor[bson.ObjectID]():   {},
	reflect.TypeFor[bson.Decimal128](): {},
	reflect.TypeFor[bson.Timestamp]():  {},
	reflect.TypeFor[bson.Binary]():     {},
	reflect.TypeFor[bson.Regex]():      {},
	reflect.TypeFor[bson.RawValue]():   {},
	reflect.TypeFor[bson.DBPointer]():  {},
}

// isEntityType reports whether t is a named struct type that should be
// treated as an entity rather than a simple value.
func isEntityType(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return false
	}

	_, simple := simpleStructTypes[t]

	return !simple
}

// odmOptions are the parsed options of an `odm:"..."` tag.
type odmOptions struct {
	id  bool
	ref bool
}

func parseODMTag(tag string) odmOptions {
	var opts odmOptions

	for opt := range strings.SplitSeq(tag, ",") {
		switch strings.TrimSpace(opt) {
		case "id":
			opts.id = true
		case "ref", "dbref":
			opts.ref = true
		}
	}

	return opts
}

// bsonName returns the key from a `bson:"..."` tag and whether the field is
// inlined or skipped.
func bsonName(tag string) (name string, inline, skip bool) {
	if tag == "-" {
		return "", false, true
	}

	name, rest, _ := strings.Cut(tag, ",")
	for opt := range strings.SplitSeq(rest, ",") {
		if opt == "inline" {
			inline = true
		}
	}

	return name, inline, false
}

// FieldTag is the persistence information carried by a struct field tag.
type FieldTag struct {
	Name      string // Document key override
	Inline    bool
	Skip      bool
	ID        bool
	Reference bool
}

// ParseTag reads the bson and odm keys of a struct field tag.
func ParseTag(tag reflect.StructTag) FieldTag {
	name, inline, skip := bsonName(tag.Get(TagBSON))
	opts := parseODMTag(tag.Get(TagODM))

	return FieldTag{
		Name:      name,
		Inline:    inline,
		Skip:      skip,
		ID:        opts.id || name == IDFieldName,
		Reference: opts.ref,
	}
}

// buildEntity inspects a struct type. Nested types are not followed here;
// properties resolve them through the registry on demand.
func buildEntity(t reflect.Type) (*PersistentEntity, error) {
	e := &PersistentEntity{
		Name:       t.Name(),
		Collection: collectionName(t),
		Type:       t,
	}

	props := collectProperties(t, nil)

	// An explicitly tagged identifier wins over one found by name.
	explicit := false
	for _, p := range props {
		if p.ID {
			explicit = true
			break
		}
	}

	if !explicit {
		for _, p := range props {
			if p.Name == "id" {
				p.ID = true
				break
			}
		}
	}

	for _, p := range props {
		if err := e.addProperty(p); err != nil {
			return nil, fmt.Errorf("build entity %s: %w", t, err)
		}
	}

	return e, nil
}

func collectProperties(t reflect.Type, prefix []int) []*PersistentProperty {
	var props []*PersistentProperty

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		index := append(append([]int{}, prefix...), i)

		tag := ParseTag(sf.Tag)
		if tag.Skip {
			continue
		}

		if tag.Inline && sf.Type.Kind() == reflect.Struct {
			props = append(props, collectProperties(sf.Type, index)...)
			continue
		}

		elem, many, keyed := elementType(sf.Type)

		p := &PersistentProperty{
			Name:      common.LowerCamel(sf.Name),
			FieldName: tag.Name,
			ID:        tag.ID,
			Reference: tag.Reference,
			Many:      many,
			Keyed:     keyed,
			elemType:  elem,
			index:     index,
		}

		if isEntityType(elem) {
			p.TypeName = elem.Name()
		}

		props = append(props, p)
	}

	return props
}

// elementType unwraps pointers, slices, arrays and maps down to the type a
// nested document or reference would have. keyed is set when the outermost
// container is a map.
func elementType(t reflect.Type) (elem reflect.Type, many, keyed bool) {
	for {
		switch t.Kind() {
		case reflect.Pointer:
			t = t.Elem()
		case reflect.Slice, reflect.Array:
			if t.Elem().Kind() == reflect.Uint8 {
				return t, many, keyed
			}

			many = true
			t = t.Elem()
		case reflect.Map:
			keyed = keyed || !many
			many = true
			t = t.Elem()
		default:
			return t, many, keyed
		}
	}
}

func collectionName(t reflect.Type) string {
	if namer, ok := reflect.New(t).Interface().(CollectionNamer); ok {
		if name := namer.CollectionName(); name != "" {
			return name
		}
	}

	return common.LowerCamel(t.Name())
}
