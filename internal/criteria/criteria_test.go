package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestWhere_Is(t *testing.T) {
	doc, err := Where("foo").Is("value").Document()
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "foo", Value: "value"}}, doc)
}

func TestWhere_IsNil(t *testing.T) {
	doc, err := Where("reference").Is(nil).Document()
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "reference", Value: nil}}, doc)
}

func TestWhere_Operators(t *testing.T) {
	doc, err := Where("age").Gt(18).Lte(65).And("tags").All("green", "orange").Document()
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "age", Value: bson.D{{Key: "$gt", Value: 18}, {Key: "$lte", Value: 65}}},
		{Key: "tags", Value: bson.D{{Key: "$all", Value: bson.A{"green", "orange"}}}},
	}, doc)
}

func TestWhere_AndChain(t *testing.T) {
	doc, err := Where("id").Is("id_value").And("publishers").Ne("5f1d7c2e9b3a4c6d8e0f1a2b").Document()
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "id", Value: "id_value"},
		{Key: "publishers", Value: bson.D{{Key: "$ne", Value: "5f1d7c2e9b3a4c6d8e0f1a2b"}}},
	}, doc)
}

func TestOrOperator(t *testing.T) {
	doc, err := New().OrOperator(Where("foo").Is("bar"), Where("baz").Exists(false)).Document()
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "foo", Value: "bar"}},
		bson.D{{Key: "baz", Value: bson.D{{Key: "$exists", Value: false}}}},
	}}}, doc)
}

func TestAndOperatorAfterField(t *testing.T) {
	doc, err := Where("someString").Is("foo").AndOperator(Where("reference").In(1, 2)).Document()
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "someString", Value: "foo"},
		{Key: "$and", Value: bson.A{
			bson.D{{Key: "reference", Value: bson.D{{Key: "$in", Value: bson.A{1, 2}}}}},
		}},
	}, doc)
}

func TestElemMatch(t *testing.T) {
	doc, err := Where("items").ElemMatch(Where("qty").Gt(2)).Document()
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "items", Value: bson.D{
		{Key: "$elemMatch", Value: bson.D{{Key: "qty", Value: bson.D{{Key: "$gt", Value: 2}}}}},
	}}}, doc)
}

func TestInvalidCriteria(t *testing.T) {
	tests := []struct {
		name     string
		criteria *Criteria
	}{
		{"is twice", Where("a").Is(1).Is(2)},
		{"is after operator", Where("a").Ne(1).Is(2)},
		{"operator after is", Where("a").Is(1).Ne(2)},
		{"operator without key", New().Ne(1)},
		{"duplicate key", Where("a").Is(1).And("a").Is(2)},
		{"duplicate logical", New().OrOperator(Where("a").Is(1)).OrOperator(Where("b").Is(1))},
		{"invalid nested", New().OrOperator(Where("a").Is(1).Is(2))},
		{"error before and", Where("a").Is(1).Is(2).And("b").Is(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.criteria.Document()
			assert.ErrorIs(t, err, ErrInvalidCriteria)
		})
	}
}

func TestBranchesDoNotShareLinks(t *testing.T) {
	base := Where("a").Is(1)
	left := base.And("b").Is(2)
	right := base.And("c").Is(3)

	leftDoc, err := left.Document()
	require.NoError(t, err)
	rightDoc, err := right.Document()
	require.NoError(t, err)

	assert.Equal(t, bson.D{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, leftDoc)
	assert.Equal(t, bson.D{{Key: "a", Value: 1}, {Key: "c", Value: 3}}, rightDoc)
}

func TestQuery_Document(t *testing.T) {
	doc, err := NewQuery(Where("a").Is(1)).AddCriteria(Where("b").In("x")).Document()
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "a", Value: 1},
		{Key: "b", Value: bson.D{{Key: "$in", Value: bson.A{"x"}}}},
	}, doc)

	_, err = NewQuery(Where("a").Is(1), Where("a").Is(2)).Document()
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}
