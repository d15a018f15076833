package schema

import (
	"docmapper/internal/diagnostic"
	"docmapper/internal/match"
)

const maxSuggestions = 3

// Validate checks a schema for problems that would make the declared
// entities unusable.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.Add(diagnostic.Errorf("schema_is_nil", "schema file is nil"))
		return res
	}

	seen := map[string]struct{}{}
	entities := f.EntityNames()

	for i := range f.Entities {
		e := &f.Entities[i]

		if e.Name == "" {
			res.Add(diagnostic.Errorf("missing_entity_name", "entity #%d has no name", i+1))
			continue
		}

		if _, dup := seen[e.Name]; dup {
			res.Add(diagnostic.Errorf("duplicate_entity", "duplicate entity %q", e.Name).On(e.Name, ""))
			continue
		}

		seen[e.Name] = struct{}{}

		validateEntity(res, e, entities)
	}

	return res
}

func validateEntity(res *diagnostic.Diagnostics, e *Entity, entities []string) {
	props := map[string]struct{}{}
	fields := map[string]string{}

	for _, p := range e.Properties {
		if p.Name == "" {
			res.Add(diagnostic.Errorf("missing_property_name", "property has no name").On(e.Name, ""))
			continue
		}

		if _, dup := props[p.Name]; dup {
			res.Add(diagnostic.Errorf("duplicate_property", "duplicate property %q", p.Name).On(e.Name, p.Name))
			continue
		}

		props[p.Name] = struct{}{}

		if p.Field != "" {
			if other, dup := fields[p.Field]; dup {
				res.Add(diagnostic.Errorf("duplicate_field",
					"properties %q and %q share field %q", other, p.Name, p.Field).On(e.Name, p.Name))
			}

			fields[p.Field] = p.Name
		}

		validateType(res, e, &p, entities)
	}

	if e.ID != "" {
		if _, ok := props[e.ID]; !ok {
			res.Add(diagnostic.Errorf("missing_id_property", "identifier %q is not a declared property", e.ID).
				On(e.Name, e.ID).
				Suggest(match.Suggest(e.ID, e.PropertyNames(), maxSuggestions)...))
		}
	} else if e.IDProperty() == "" {
		res.Add(diagnostic.Infof("no_id_property", "entity has no identifier property, only \"_id\" keys are converted").On(e.Name, ""))
	}
}

func validateType(res *diagnostic.Diagnostics, e *Entity, p *Property, entities []string) {
	if p.Type == "" {
		if p.Reference {
			res.Add(diagnostic.Errorf("reference_without_type",
				"reference property %q needs the referenced entity as its type", p.Name).On(e.Name, p.Name))
		}

		return
	}

	if IsScalar(p.Type) {
		if p.Reference {
			res.Add(diagnostic.Errorf("scalar_reference",
				"reference property %q has scalar type %q", p.Name, p.Type).On(e.Name, p.Name))
		}

		return
	}

	for _, name := range entities {
		if name == p.Type {
			return
		}
	}

	res.Add(diagnostic.Errorf("unknown_property_type", "property %q has unknown type %q", p.Name, p.Type).
		On(e.Name, p.Name).
		Suggest(match.Suggest(p.Type, entities, maxSuggestions)...))
}
