package aggregation

import "slices"

// UnderscoreID is the identifier field of every document.
const UnderscoreID = "_id"

// Field is a projected field: Name is the output key, Target the referenced
// input field.
type Field struct {
	Name   string
	Target string
}

// Aliased reports whether the field projects a different input field.
func (f Field) Aliased() bool {
	return f.Target != "" && f.Target != f.Name
}

// FieldSet is an ordered list of projected fields.
type FieldSet struct {
	fields []Field
}

// Fields creates a field set of implicitly projected fields.
func Fields(names ...string) *FieldSet {
	fs := &FieldSet{fields: make([]Field, 0, len(names))}
	for _, name := range names {
		fs.fields = append(fs.fields, Field{Name: name, Target: name})
	}

	return fs
}

// And returns a copy of the set with name projected from target.
func (fs *FieldSet) And(name, target string) *FieldSet {
	return &FieldSet{fields: append(slices.Clone(fs.fields), Field{Name: name, Target: target})}
}

// All returns a copy of the fields in declaration order.
func (fs *FieldSet) All() []Field {
	return slices.Clone(fs.fields)
}
