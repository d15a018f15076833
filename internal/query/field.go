package query

import (
	"docmapper/internal/entity"
)

// field is a criteria key seen from the entity it is applied to.
type field struct {
	name     string
	entity   *entity.PersistentEntity
	path     entity.PropertyPath
	resolved bool
	property *entity.PersistentProperty
}

func newField(name string, e *entity.PersistentEntity) field {
	f := field{name: name, entity: e}
	if e == nil {
		return f
	}

	f.path, f.resolved = e.PropertyPath(name)
	if f.resolved {
		f.property, _ = f.path.Leaf()
	}

	return f
}

// isID reports whether the key addresses the identifier. Without metadata
// only "_id" does; "id" is left alone.
func (f field) isID() bool {
	if f.entity == nil {
		return f.name == entity.IDFieldName
	}

	if _, ok := f.entity.IDProperty(); ok {
		return f.entity.IsIDName(f.name)
	}

	return f.name == entity.IDFieldName || f.name == "id"
}

// mappedKey is the document key the criteria applies to.
func (f field) mappedKey() string {
	switch {
	case f.isID():
		return entity.IDFieldName
	case f.resolved:
		return f.path.FieldPath()
	default:
		return f.name
	}
}

func (f field) isAssociation() bool {
	return f.property != nil && f.property.Reference
}

// keyed reports whether the key addresses a whole map of references rather
// than one of its entries.
func (f field) keyed() bool {
	if f.property == nil || !f.property.Keyed || len(f.path.Segments) == 0 {
		return false
	}

	return f.path.Segments[len(f.path.Segments)-1].Property == f.property
}

// propertyEntity is the entity nested documents under this key are mapped
// against, or nil.
func (f field) propertyEntity() *entity.PersistentEntity {
	if f.property == nil {
		return nil
	}

	e, _ := f.property.Entity()

	return e
}
