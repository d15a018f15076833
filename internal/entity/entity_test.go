package entity

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Sample struct {
	Foo string `odm:"id"`
}

type Reference struct {
	ID int64
}

type WithDBRef struct {
	SomeString string
	Reference  *Reference `odm:"ref"`
}

type CustomizedField struct {
	Field *CustomizedField `bson:"foo"`
}

type Item struct {
	Name string `bson:"item_name"`
}

type Order struct {
	ID    bson.ObjectID `bson:"_id"`
	Items []Item
}

type Base struct {
	ID string `bson:"_id"`
}

type Article struct {
	Base     `bson:",inline"`
	Title    string
	Internal string `bson:"-"`
	secret   string
}

type Named struct {
	ID string
}

func (Named) CollectionName() string { return "named_things" }

type Catalog struct {
	ByName  map[string]*Sample `odm:"ref"`
	Shelves []map[string]Item
	Items   []Item
}

func TestRegistry_ReflectsStruct(t *testing.T) {
	r := NewRegistry()

	e, ok := r.Entity(reflect.TypeFor[WithDBRef]())
	require.True(t, ok)
	assert.Equal(t, "WithDBRef", e.Name)
	assert.Equal(t, "withDBRef", e.Collection)
	assert.Equal(t, []string{"someString", "reference"}, e.PropertyNames())

	_, hasID := e.IDProperty()
	assert.False(t, hasID)

	ref, ok := e.Property("reference")
	require.True(t, ok)
	assert.True(t, ref.Reference)
	assert.Equal(t, "Reference", ref.TypeName)
	assert.Equal(t, "WithDBRef.reference", ref.String())
	assert.Same(t, e, ref.Owner())

	target, ok := ref.Entity()
	require.True(t, ok)
	assert.Equal(t, "Reference", target.Name)

	id, ok := target.IDProperty()
	require.True(t, ok)
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, IDFieldName, id.FieldName)
}

func TestEntity_KeyedProperties(t *testing.T) {
	e, ok := NewRegistry().EntityFor(Catalog{})
	require.True(t, ok)

	tests := []struct {
		name  string
		many  bool
		keyed bool
	}{
		{"byName", true, true},
		{"shelves", true, false},
		{"items", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := e.Property(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.many, p.Many)
			assert.Equal(t, tt.keyed, p.Keyed)
		})
	}
}

func TestRegistry_PointerTypesShareEntity(t *testing.T) {
	r := NewRegistry()

	byValue, ok := r.Entity(reflect.TypeFor[Sample]())
	require.True(t, ok)

	byPointer, ok := r.EntityFor(&Sample{})
	require.True(t, ok)

	assert.Same(t, byValue, byPointer)

	byName, ok := r.ByName("Sample")
	require.True(t, ok)
	assert.Same(t, byValue, byName)
}

func TestRegistry_RejectsNonEntities(t *testing.T) {
	r := NewRegistry()

	for _, v := range []any{"string", 42, bson.NewObjectID(), bson.D{}, nil} {
		_, ok := r.EntityFor(v)
		assert.False(t, ok, "%T should not be an entity", v)
	}
}

func TestEntity_ExplicitID(t *testing.T) {
	e, ok := NewRegistry().EntityFor(Sample{})
	require.True(t, ok)

	id, ok := e.IDProperty()
	require.True(t, ok)
	assert.Equal(t, "foo", id.Name)
	assert.Equal(t, "_id", id.FieldName)

	assert.True(t, e.IsIDName("foo"))
	assert.True(t, e.IsIDName("_id"))
	assert.False(t, e.IsIDName("id"))
}

func TestEntity_InlineAndSkippedFields(t *testing.T) {
	e, ok := NewRegistry().EntityFor(Article{})
	require.True(t, ok)

	assert.Equal(t, []string{"id", "title"}, e.PropertyNames())
	assert.True(t, e.IsIDName("id"))

	v, ok := e.IDValue(Article{Base: Base{ID: "a1"}})
	require.True(t, ok)
	assert.Equal(t, "a1", v)
}

func TestEntity_CollectionNamer(t *testing.T) {
	e, ok := NewRegistry().EntityFor(Named{})
	require.True(t, ok)
	assert.Equal(t, "named_things", e.Collection)
}

func TestEntity_IDValue(t *testing.T) {
	e, ok := NewRegistry().EntityFor(Reference{})
	require.True(t, ok)

	tests := []struct {
		name     string
		input    any
		expected any
		found    bool
	}{
		{"struct", Reference{ID: 5}, int64(5), true},
		{"pointer", &Reference{ID: 6}, int64(6), true},
		{"nil pointer", (*Reference)(nil), nil, false},
		{"bson.D by _id", bson.D{{Key: "_id", Value: 7}}, 7, true},
		{"bson.D by property", bson.D{{Key: "id", Value: 8}}, 8, true},
		{"bson.M", bson.M{"_id": 9}, 9, true},
		{"map", map[string]any{"id": 10}, 10, true},
		{"other type", Sample{Foo: "x"}, nil, false},
		{"nil", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := e.IDValue(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestNewEntity(t *testing.T) {
	r := NewRegistry()

	person, err := NewEntity("Person", "people", []PropertyDef{
		{Name: "id", ID: true},
		{Name: "lastName", FieldName: "last_name"},
		{Name: "address", TypeName: "Address"},
	})
	require.NoError(t, err)
	require.NoError(t, r.Register(person))

	address, err := NewEntity("Address", "", []PropertyDef{{Name: "street"}})
	require.NoError(t, err)
	require.NoError(t, r.Register(address))
	assert.Equal(t, "address", address.Collection)

	path, ok := person.PropertyPath("address.street")
	require.True(t, ok)
	assert.Equal(t, "address.street", path.FieldPath())

	lastName, ok := person.Property("last_name")
	require.True(t, ok)
	assert.Equal(t, "lastName", lastName.Name)

	assert.Error(t, r.Register(person))
	assert.Equal(t, []string{"Address", "Person"}, r.Names())
}

func TestNewEntity_Errors(t *testing.T) {
	_, err := NewEntity("", "", nil)
	assert.Error(t, err)

	_, err = NewEntity("Dup", "", []PropertyDef{{Name: "a"}, {Name: "a"}})
	assert.ErrorContains(t, err, "duplicate property")

	_, err = NewEntity("TwoIDs", "", []PropertyDef{{Name: "a", ID: true}, {Name: "b", ID: true}})
	assert.ErrorContains(t, err, "identifier")

	_, err = NewEntity("NoName", "", []PropertyDef{{FieldName: "x"}})
	assert.Error(t, err)
}

func TestRegistry_ConcurrentLookups(t *testing.T) {
	r := NewRegistry()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		found = map[*PersistentEntity]struct{}{}
	)

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			e, ok := r.EntityFor(&WithDBRef{})
			if !ok {
				return
			}

			mu.Lock()
			found[e] = struct{}{}
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Len(t, found, 1)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag      reflect.StructTag
		expected FieldTag
	}{
		{tag: ``, expected: FieldTag{}},
		{tag: `bson:"_id"`, expected: FieldTag{Name: "_id", ID: true}},
		{tag: `bson:"name,omitempty"`, expected: FieldTag{Name: "name"}},
		{tag: `bson:",inline"`, expected: FieldTag{Inline: true}},
		{tag: `bson:"-"`, expected: FieldTag{Skip: true}},
		{tag: `odm:"id"`, expected: FieldTag{ID: true}},
		{tag: `bson:"author_ref" odm:"dbref"`, expected: FieldTag{Name: "author_ref", Reference: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTag(tt.tag))
		})
	}
}
