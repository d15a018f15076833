package convert

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"docmapper/internal/entity"
)

type Color uint8

const (
	ColorRed Color = iota
	ColorBlue
)

func (c Color) String() string {
	if c == ColorBlue {
		return "BLUE"
	}

	return "RED"
}

type Author struct {
	ID bson.ObjectID `bson:"_id"`
}

type Book struct {
	Title  string
	Author *Author `odm:"ref"`
}

func authorProperty(t *testing.T, r *entity.Registry) *entity.PersistentProperty {
	t.Helper()

	e, ok := r.Entity(reflect.TypeFor[Book]())
	require.True(t, ok)

	p, ok := e.Property("author")
	require.True(t, ok)
	require.True(t, p.Reference)

	return p
}

func TestIsEnum(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "stringer int", value: ColorBlue, expected: true},
		{name: "plain int", value: 3, expected: false},
		{name: "duration", value: time.Second, expected: false},
		{name: "month", value: time.March, expected: false},
		{name: "string", value: "BLUE", expected: false},
		{name: "nil", value: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEnum(tt.value))
		})
	}
}

func TestToMongoType(t *testing.T) {
	c := New(entity.NewRegistry())

	assert.Equal(t, "BLUE", c.ToMongoType(ColorBlue))
	assert.Equal(t, 42, c.ToMongoType(42))
	assert.Equal(t, bson.A{"RED", "x"}, c.ToMongoType(bson.A{ColorRed, "x"}))
	assert.Equal(t, []any{"BLUE"}, c.ToMongoType([]any{ColorBlue}))
}

func TestToDBRef(t *testing.T) {
	r := entity.NewRegistry()
	c := New(r)
	prop := authorProperty(t, r)

	id := bson.NewObjectID()
	expected := DBRef{Collection: "author", ID: id}

	tests := []struct {
		name     string
		source   any
		expected any
	}{
		{name: "pointer", source: &Author{ID: id}, expected: expected},
		{name: "struct", source: Author{ID: id}, expected: expected},
		{name: "bare id", source: id, expected: expected},
		{name: "hex id", source: id.Hex(), expected: expected},
		{name: "bson.D", source: bson.D{{Key: "_id", Value: id.Hex()}}, expected: expected},
		{name: "bson.M", source: bson.M{"_id": id}, expected: expected},
		{name: "nil", source: nil, expected: nil},
		{name: "nil pointer", source: (*Author)(nil), expected: nil},
		{name: "existing ref", source: DBRef{Collection: "other", ID: 1}, expected: DBRef{Collection: "other", ID: 1}},
		{name: "document without id", source: bson.D{{Key: "name", Value: "x"}}, expected: bson.D{{Key: "name", Value: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.ToDBRef(tt.source, prop))
		})
	}
}

func TestDBRef_MarshalsAsReference(t *testing.T) {
	ref := DBRef{Collection: "author", ID: "abc"}

	out, err := bson.MarshalExtJSON(bson.D{{Key: "author", Value: ref}}, false, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"author":{"$ref":"author","$id":"abc"}}`, string(out))
	assert.Equal(t, "author/abc", ref.String())
}
