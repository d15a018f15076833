// Package criteria builds MongoDB criteria documents from a small fluent DSL:
//
//	criteria.Where("someString").Is("foo").
//	    AndOperator(criteria.Where("reference").In(first, second))
//
// yields
//
//	{someString: "foo", $and: [{reference: {$in: [first, second]}}]}
//
// Values are kept as given; mapping them onto entities is the job of the
// query mapper.
package criteria

import (
	"errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalidCriteria is returned for criteria that cannot be rendered.
var ErrInvalidCriteria = errors.New("invalid criteria")

// Criteria is a chain of field criteria. Each link holds the operators
// declared for one key.
type Criteria struct {
	key       string
	isValue   any
	hasIs     bool
	operators bson.D
	chain     []*Criteria
	err       error
}

// Where starts a criteria chain for key.
func Where(key string) *Criteria {
	c := &Criteria{key: key}
	c.chain = []*Criteria{c}

	return c
}

// New returns an empty criteria chain for logical operators only.
func New() *Criteria {
	c := &Criteria{}
	c.chain = []*Criteria{c}

	return c
}

// And continues the chain with a new key.
func (c *Criteria) And(key string) *Criteria {
	next := &Criteria{key: key}
	next.chain = append(slices.Clone(c.chain), next)

	return next
}

// Is declares equality.
func (c *Criteria) Is(v any) *Criteria {
	if c.hasIs {
		c.fail("multiple 'is' values declared for %q", c.key)
		return c
	}

	if len(c.operators) > 0 {
		c.fail("'is' cannot be combined with operators for %q", c.key)
		return c
	}

	c.isValue = v
	c.hasIs = true

	return c
}

// Ne declares $ne.
func (c *Criteria) Ne(v any) *Criteria { return c.op("$ne", v) }

// Gt declares $gt.
func (c *Criteria) Gt(v any) *Criteria { return c.op("$gt", v) }

// Gte declares $gte.
func (c *Criteria) Gte(v any) *Criteria { return c.op("$gte", v) }

// Lt declares $lt.
func (c *Criteria) Lt(v any) *Criteria { return c.op("$lt", v) }

// Lte declares $lte.
func (c *Criteria) Lte(v any) *Criteria { return c.op("$lte", v) }

// In declares $in over values.
func (c *Criteria) In(values ...any) *Criteria { return c.op("$in", bson.A(values)) }

// Nin declares $nin over values.
func (c *Criteria) Nin(values ...any) *Criteria { return c.op("$nin", bson.A(values)) }

// All declares $all over values.
func (c *Criteria) All(values ...any) *Criteria { return c.op("$all", bson.A(values)) }

// Exists declares $exists.
func (c *Criteria) Exists(b bool) *Criteria { return c.op("$exists", b) }

// Size declares $size.
func (c *Criteria) Size(n int) *Criteria { return c.op("$size", n) }

// Regex declares $regex.
func (c *Criteria) Regex(pattern string) *Criteria { return c.op("$regex", pattern) }

// ElemMatch declares $elemMatch with the nested criteria.
func (c *Criteria) ElemMatch(nested *Criteria) *Criteria {
	doc, err := nested.Document()
	if err != nil {
		c.err = errors.Join(c.err, err)
		return c
	}

	return c.op("$elemMatch", doc)
}

// OrOperator adds {$or: [...]}.
func (c *Criteria) OrOperator(criteria ...*Criteria) *Criteria {
	return c.logical("$or", criteria)
}

// AndOperator adds {$and: [...]}.
func (c *Criteria) AndOperator(criteria ...*Criteria) *Criteria {
	return c.logical("$and", criteria)
}

// NorOperator adds {$nor: [...]}.
func (c *Criteria) NorOperator(criteria ...*Criteria) *Criteria {
	return c.logical("$nor", criteria)
}

// Key returns the key of the current link.
func (c *Criteria) Key() string {
	return c.key
}

// Err returns the errors recorded while building the chain.
func (c *Criteria) Err() error {
	var errs []error
	for _, link := range c.chain {
		if link.err != nil {
			errs = append(errs, link.err)
		}
	}

	return errors.Join(errs...)
}

// Document renders the whole chain.
func (c *Criteria) Document() (bson.D, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}

	doc := bson.D{}
	seen := make(map[string]struct{}, len(c.chain))

	add := func(e bson.E) error {
		if _, dup := seen[e.Key]; dup {
			return fmt.Errorf("%w: key %q declared twice", ErrInvalidCriteria, e.Key)
		}

		seen[e.Key] = struct{}{}
		doc = append(doc, e)

		return nil
	}

	for _, link := range c.chain {
		var err error

		switch {
		case link.key == "":
			for _, e := range link.operators {
				if err = add(e); err != nil {
					break
				}
			}
		case link.hasIs:
			err = add(bson.E{Key: link.key, Value: link.isValue})
		default:
			err = add(bson.E{Key: link.key, Value: link.operators})
		}

		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (c *Criteria) op(name string, v any) *Criteria {
	if c.key == "" {
		c.fail("operator %s requires a key", name)
		return c
	}

	if c.hasIs {
		c.fail("operator %s cannot be combined with 'is' for %q", name, c.key)
		return c
	}

	c.operators = append(c.operators, bson.E{Key: name, Value: v})

	return c
}

func (c *Criteria) logical(name string, criteria []*Criteria) *Criteria {
	list := make(bson.A, 0, len(criteria))

	for _, nested := range criteria {
		doc, err := nested.Document()
		if err != nil {
			c.err = errors.Join(c.err, err)
			return c
		}

		list = append(list, doc)
	}

	// Logical operators live on a keyless link of their own.
	link := &Criteria{operators: bson.D{{Key: name, Value: list}}}
	link.chain = append(slices.Clone(c.chain), link)

	return link
}

func (c *Criteria) fail(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: "+format, append([]any{ErrInvalidCriteria}, args...)...)
	}
}
