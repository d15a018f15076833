package aggregation

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StageMatch is the key of the match stage.
const StageMatch = "$match"

// Stage is one step of an aggregation pipeline.
type Stage interface {
	ToDocument(ctx Context) (bson.D, error)
}

// MatchOperation filters documents with a criteria document.
type MatchOperation struct {
	criteria bson.D
}

// Match creates a $match stage. The criteria document is used as given; map
// it with the query mapper first when it refers to entity properties.
func Match(criteria bson.D) *MatchOperation {
	return &MatchOperation{criteria: criteria}
}

// ToDocument implements Stage.
func (m *MatchOperation) ToDocument(Context) (bson.D, error) {
	return bson.D{{Key: StageMatch, Value: m.criteria}}, nil
}

// Aggregation is an ordered list of stages.
type Aggregation struct {
	stages []Stage
}

// NewAggregation creates a pipeline from stages.
func NewAggregation(stages ...Stage) *Aggregation {
	return &Aggregation{stages: stages}
}

// Pipeline renders every stage with ctx, in order.
func (a *Aggregation) Pipeline(ctx Context) ([]bson.D, error) {
	if ctx == nil {
		ctx = DefaultContext
	}

	pipeline := make([]bson.D, 0, len(a.stages))
	for i, stage := range a.stages {
		doc, err := stage.ToDocument(ctx)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}

		pipeline = append(pipeline, doc)
	}

	return pipeline, nil
}
