package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PathSegment is one dot-separated element of a property path.
type PathSegment struct {
	Raw      string              // Segment as written
	Property *PersistentProperty // Resolved property; nil for positional segments
}

// Positional reports whether the segment addresses an array position
// ("0", "$", "$[]", "$[elem]") rather than a property.
func (s PathSegment) Positional() bool {
	return s.Property == nil
}

// FieldName returns the document key of the segment.
func (s PathSegment) FieldName() string {
	if s.Property == nil {
		return s.Raw
	}

	return s.Property.FieldName
}

// PropertyPath is a dotted path resolved against an entity.
type PropertyPath struct {
	Root     *PersistentEntity
	Segments []PathSegment
}

// SplitPath splits a dotted path into its segments.
// Supports: "field", "outer.inner", "items.0.name", "items.$.name".
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	parts := strings.Split(path, ".")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}
	}

	return parts, nil
}

// IsPositional reports whether a path segment is an array position or a
// positional operator.
func IsPositional(segment string) bool {
	if segment == "$" || strings.HasPrefix(segment, "$[") {
		return true
	}

	_, err := strconv.Atoi(segment)

	return err == nil
}

// PropertyPath resolves path segment by segment. Every named segment must be
// a property of the entity reached so far; positional segments keep the
// current entity. Unresolvable paths report false.
func (e *PersistentEntity) PropertyPath(path string) (PropertyPath, bool) {
	parts, err := SplitPath(path)
	if err != nil {
		return PropertyPath{}, false
	}

	result := PropertyPath{Root: e, Segments: make([]PathSegment, 0, len(parts))}
	current := e

	for i, part := range parts {
		if i > 0 && IsPositional(part) {
			result.Segments = append(result.Segments, PathSegment{Raw: part})
			continue
		}

		if current == nil {
			return PropertyPath{}, false
		}

		prop, ok := current.Property(part)
		if !ok {
			return PropertyPath{}, false
		}

		result.Segments = append(result.Segments, PathSegment{Raw: part, Property: prop})

		current, _ = prop.Entity()
	}

	return result, true
}

// Leaf returns the last resolved property of the path.
func (p PropertyPath) Leaf() (*PersistentProperty, bool) {
	for i := len(p.Segments) - 1; i >= 0; i-- {
		if prop := p.Segments[i].Property; prop != nil {
			return prop, true
		}
	}

	return nil, false
}

// FieldPath returns the path with every property replaced by its document
// field name, e.g. "withDbRef.reference" or "foo.foo".
func (p PropertyPath) FieldPath() string {
	keys := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		keys[i] = s.FieldName()
	}

	return strings.Join(keys, ".")
}

// String returns the path as written.
func (p PropertyPath) String() string {
	raws := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		raws[i] = s.Raw
	}

	return strings.Join(raws, ".")
}

// FirstUnresolved returns the index of the first named segment of path that
// does not resolve against e, and the entity it was looked up on. It reports
// false when the path resolves completely.
func (e *PersistentEntity) FirstUnresolved(path string) (int, *PersistentEntity, bool) {
	parts, err := SplitPath(path)
	if err != nil {
		return 0, e, true
	}

	current := e
	for i, part := range parts {
		if i > 0 && IsPositional(part) {
			continue
		}

		if current == nil {
			return i, nil, true
		}

		prop, ok := current.Property(part)
		if !ok {
			return i, current, true
		}

		current, _ = prop.Entity()
	}

	return 0, nil, false
}
