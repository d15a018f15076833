package aggregation

import "docmapper/internal/entity"

// Context resolves field names used in a stage into document field names.
type Context interface {
	Reference(field string) string
}

type defaultContext struct{}

func (defaultContext) Reference(field string) string { return field }

// DefaultContext uses field names as written.
var DefaultContext Context = defaultContext{}

// TypedContext maps property paths of an entity to their field names, e.g.
// "id" to "_id" or a bson-tag override. Unknown names are used as written.
type TypedContext struct {
	Entity *entity.PersistentEntity
}

// NewTypedContext creates a context for e.
func NewTypedContext(e *entity.PersistentEntity) *TypedContext {
	return &TypedContext{Entity: e}
}

// Reference implements Context.
func (c *TypedContext) Reference(field string) string {
	if c.Entity == nil {
		return field
	}

	path, ok := c.Entity.PropertyPath(field)
	if !ok {
		return field
	}

	return path.FieldPath()
}
