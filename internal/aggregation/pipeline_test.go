package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestAggregation_Pipeline(t *testing.T) {
	agg := NewAggregation(
		Match(bson.D{{Key: "status", Value: "A"}}),
		Project("status").And("amount").Multiply(2).As("double"),
	)

	pipeline, err := agg.Pipeline(nil)
	require.NoError(t, err)

	assert.Equal(t, []bson.D{
		{{Key: StageMatch, Value: bson.D{{Key: "status", Value: "A"}}}},
		{{Key: StageProject, Value: bson.D{
			{Key: "status", Value: 1},
			{Key: "double", Value: bson.D{{Key: OpMultiply, Value: bson.A{"$amount", 2}}}},
		}}},
	}, pipeline)
}

func TestAggregation_PipelineReportsFailingStage(t *testing.T) {
	agg := NewAggregation(Match(bson.D{}), Project().AndExclude("name"))

	_, err := agg.Pipeline(DefaultContext)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "stage 1")
}
