package schema

import (
	"fmt"

	"docmapper/internal/entity"
)

// BuildRegistry validates f and returns a registry holding its entities.
func BuildRegistry(f *File) (*entity.Registry, error) {
	r := entity.NewRegistry()
	if err := Register(f, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Register validates f and adds its entities to r.
func Register(f *File, r *entity.Registry) error {
	if diags := Validate(f); diags.HasErrors() {
		return fmt.Errorf("invalid schema: %w", diags.Error())
	}

	for i := range f.Entities {
		e, err := buildEntity(&f.Entities[i])
		if err != nil {
			return err
		}

		if err := r.Register(e); err != nil {
			return fmt.Errorf("register entity %s: %w", e.Name, err)
		}
	}

	return nil
}

func buildEntity(e *Entity) (*entity.PersistentEntity, error) {
	id := e.IDProperty()
	defs := make([]entity.PropertyDef, 0, len(e.Properties))

	for _, p := range e.Properties {
		def := entity.PropertyDef{
			Name:      p.Name,
			FieldName: p.Field,
			ID:        p.Name == id,
			Reference: p.Reference,
			Many:      p.Many,
			Keyed:     p.Keyed,
		}

		if p.Type != "" && !IsScalar(p.Type) {
			def.TypeName = p.Type
		}

		defs = append(defs, def)
	}

	return entity.NewEntity(e.Name, e.Collection, defs)
}
