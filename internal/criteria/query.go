package criteria

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Query combines several criteria chains into one criteria document.
type Query struct {
	criteria []*Criteria
}

// NewQuery creates a query from the given criteria.
func NewQuery(criteria ...*Criteria) *Query {
	return &Query{criteria: criteria}
}

// AddCriteria appends a criteria chain.
func (q *Query) AddCriteria(c *Criteria) *Query {
	q.criteria = append(q.criteria, c)
	return q
}

// Document merges the criteria documents. A key may only be declared by one
// chain.
func (q *Query) Document() (bson.D, error) {
	doc := bson.D{}
	owner := make(map[string]struct{})

	for _, c := range q.criteria {
		part, err := c.Document()
		if err != nil {
			return nil, err
		}

		for _, e := range part {
			if _, dup := owner[e.Key]; dup {
				return nil, fmt.Errorf("%w: key %q declared by more than one criteria", ErrInvalidCriteria, e.Key)
			}

			owner[e.Key] = struct{}{}
			doc = append(doc, e)
		}
	}

	return doc, nil
}
