package entity

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDFieldName is the document key of every entity identifier.
const IDFieldName = "_id"

// CollectionNamer lets a struct type choose its collection name.
type CollectionNamer interface {
	CollectionName() string
}

// PersistentEntity describes how a domain type is stored.
type PersistentEntity struct {
	Name       string       // Entity name, the Go type name for reflected entities
	Collection string       // Target collection
	Type       reflect.Type // Struct type; nil for entities declared by schema

	properties []*PersistentProperty
	byName     map[string]*PersistentProperty
	byField    map[string]*PersistentProperty
	idProperty *PersistentProperty
	registry   *Registry
}

// PersistentProperty describes a single property of an entity.
type PersistentProperty struct {
	Name      string // Property name as used in queries, e.g. "someString"
	FieldName string // Document key, "_id" for the identifier
	ID        bool   // Identifier property
	Reference bool   // Stored as a DBRef rather than embedded
	Many      bool   // Slice, array or map valued
	Keyed     bool   // Map valued; elements are addressed by key
	TypeName  string // Declared entity name of the (element) type, if any

	elemType reflect.Type // (Element) type for reflected properties
	index    []int        // reflect field index for reflected properties
	owner    *PersistentEntity
}

// PropertyDef declares a property for NewEntity.
type PropertyDef struct {
	Name      string
	FieldName string
	TypeName  string
	ID        bool
	Reference bool
	Many      bool
	Keyed     bool
}

// NewEntity builds an entity that is not backed by a Go type, as declared by
// a schema file or extracted from source. Property types are looked up by
// name in the registry the entity is registered with.
func NewEntity(name, collection string, defs []PropertyDef) (*PersistentEntity, error) {
	if name == "" {
		return nil, fmt.Errorf("entity name is required")
	}

	if collection == "" {
		collection = defaultCollection(name)
	}

	e := &PersistentEntity{Name: name, Collection: collection}

	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("entity %s: property name is required", name)
		}

		p := &PersistentProperty{
			Name:      def.Name,
			FieldName: def.FieldName,
			ID:        def.ID,
			Reference: def.Reference,
			Many:      def.Many || def.Keyed,
			Keyed:     def.Keyed,
			TypeName:  def.TypeName,
		}

		if err := e.addProperty(p); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *PersistentEntity) addProperty(p *PersistentProperty) error {
	if e.byName == nil {
		e.byName = make(map[string]*PersistentProperty)
		e.byField = make(map[string]*PersistentProperty)
	}

	if _, dup := e.byName[p.Name]; dup {
		return fmt.Errorf("entity %s: duplicate property %q", e.Name, p.Name)
	}

	if p.ID {
		if e.idProperty != nil {
			return fmt.Errorf("entity %s: both %q and %q are marked as identifier", e.Name, e.idProperty.Name, p.Name)
		}

		p.FieldName = IDFieldName
		e.idProperty = p
	}

	if p.FieldName == "" {
		p.FieldName = p.Name
	}

	p.owner = e
	e.properties = append(e.properties, p)
	e.byName[p.Name] = p
	e.byField[p.FieldName] = p

	return nil
}

// Properties returns the entity properties in declaration order.
func (e *PersistentEntity) Properties() []*PersistentProperty {
	return slices.Clone(e.properties)
}

// PropertyNames returns the names of all properties in declaration order.
func (e *PersistentEntity) PropertyNames() []string {
	names := make([]string, 0, len(e.properties))
	for _, p := range e.properties {
		names = append(names, p.Name)
	}

	return names
}

// Property looks a property up by its name, falling back to its document
// field name.
func (e *PersistentEntity) Property(name string) (*PersistentProperty, bool) {
	if p, ok := e.byName[name]; ok {
		return p, true
	}

	p, ok := e.byField[name]

	return p, ok
}

// IDProperty returns the identifier property, if the entity has one.
func (e *PersistentEntity) IDProperty() (*PersistentProperty, bool) {
	return e.idProperty, e.idProperty != nil
}

// IsIDName reports whether name refers to the identifier property, either by
// its property name or by "_id".
func (e *PersistentEntity) IsIDName(name string) bool {
	if e.idProperty == nil {
		return false
	}

	return name == e.idProperty.Name || name == IDFieldName
}

// IDValue extracts the identifier from v, which may be an instance of the
// entity's struct type (or a pointer to one), a bson.D, a bson.M or a map.
func (e *PersistentEntity) IDValue(v any) (any, bool) {
	if e.idProperty == nil || v == nil {
		return nil, false
	}

	switch doc := v.(type) {
	case bson.D:
		for _, elem := range doc {
			if elem.Key == IDFieldName || elem.Key == e.idProperty.Name {
				return elem.Value, true
			}
		}

		return nil, false
	case bson.M:
		return lookupID(doc, e.idProperty.Name)
	case map[string]any:
		return lookupID(doc, e.idProperty.Name)
	}

	if e.Type == nil || e.idProperty.index == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	if rv.Type() != e.Type {
		return nil, false
	}

	return rv.FieldByIndex(e.idProperty.index).Interface(), true
}

func lookupID(m map[string]any, name string) (any, bool) {
	if v, ok := m[IDFieldName]; ok {
		return v, true
	}

	v, ok := m[name]

	return v, ok
}

// String returns the entity name.
func (e *PersistentEntity) String() string {
	return e.Name
}

// Owner returns the entity declaring the property.
func (p *PersistentProperty) Owner() *PersistentEntity {
	return p.owner
}

// Entity returns the entity of the property's (element) type, if it has one.
// For references this is the referenced entity.
func (p *PersistentProperty) Entity() (*PersistentEntity, bool) {
	if p.owner == nil || p.owner.registry == nil {
		return nil, false
	}

	r := p.owner.registry

	if p.elemType != nil {
		return r.Entity(p.elemType)
	}

	if p.TypeName != "" {
		return r.ByName(p.TypeName)
	}

	return nil, false
}

// String returns "Entity.property".
func (p *PersistentProperty) String() string {
	if p.owner == nil {
		return p.Name
	}

	return p.owner.Name + "." + p.Name
}

func defaultCollection(name string) string {
	if name == "" {
		return ""
	}

	return strings.ToLower(name[:1]) + name[1:]
}
