package schema

// File is the root of a schema file.
type File struct {
	Version  string   `yaml:"version"`
	Entities []Entity `yaml:"entities"`
}

// Entity declares one entity.
type Entity struct {
	Name       string     `yaml:"name"`
	Collection string     `yaml:"collection,omitempty"`
	ID         string     `yaml:"id,omitempty"`
	Properties []Property `yaml:"properties"`
}

// Property declares one entity property.
type Property struct {
	Name      string `yaml:"name"`
	Field     string `yaml:"field,omitempty"`
	Type      string `yaml:"type,omitempty"`
	Reference bool   `yaml:"reference,omitempty"`
	Many      bool   `yaml:"many,omitempty"`
	Keyed     bool   `yaml:"keyed,omitempty"`
}

// Scalar type names accepted for properties.
var scalarTypes = map[string]struct{}{
	"string":    {},
	"bool":      {},
	"int":       {},
	"int32":     {},
	"int64":     {},
	"float64":   {},
	"decimal":   {},
	"objectId":  {},
	"date":      {},
	"timestamp": {},
	"binary":    {},
	"regex":     {},
	"any":       {},
}

// IsScalar reports whether name is a scalar property type.
func IsScalar(name string) bool {
	_, ok := scalarTypes[name]
	return ok
}

// Entity returns the declared entity called name.
func (f *File) Entity(name string) (*Entity, bool) {
	for i := range f.Entities {
		if f.Entities[i].Name == name {
			return &f.Entities[i], true
		}
	}

	return nil, false
}

// EntityNames returns the names of all declared entities in file order.
func (f *File) EntityNames() []string {
	names := make([]string, 0, len(f.Entities))
	for _, e := range f.Entities {
		names = append(names, e.Name)
	}

	return names
}

// IDProperty returns the name of the identifier property, or "" if the
// entity has none.
func (e *Entity) IDProperty() string {
	if e.ID != "" {
		return e.ID
	}

	for _, p := range e.Properties {
		if p.Name == "id" {
			return p.Name
		}
	}

	return ""
}

// PropertyNames returns the names of all declared properties.
func (e *Entity) PropertyNames() []string {
	names := make([]string, 0, len(e.Properties))
	for _, p := range e.Properties {
		names = append(names, p.Name)
	}

	return names
}
