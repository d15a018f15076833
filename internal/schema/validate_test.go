package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(t *testing.T, f *File) []string {
	t.Helper()

	var out []string
	for _, d := range Validate(f).All() {
		out = append(out, d.Code)
	}

	return out
}

func TestValidate_Valid(t *testing.T) {
	f, err := Parse([]byte(sampleSchema))
	require.NoError(t, err)

	diags := Validate(f)
	assert.False(t, diags.HasErrors(), diags.Error())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		file     *File
		expected []string
	}{
		{
			name:     "nil",
			file:     nil,
			expected: []string{"schema_is_nil"},
		},
		{
			name: "duplicate entity",
			file: &File{Entities: []Entity{
				{Name: "A", Properties: []Property{{Name: "id"}}},
				{Name: "A", Properties: []Property{{Name: "id"}}},
			}},
			expected: []string{"duplicate_entity"},
		},
		{
			name:     "missing name",
			file:     &File{Entities: []Entity{{Properties: []Property{{Name: "id"}}}}},
			expected: []string{"missing_entity_name"},
		},
		{
			name: "duplicate property",
			file: &File{Entities: []Entity{
				{Name: "A", Properties: []Property{{Name: "id"}, {Name: "id"}}},
			}},
			expected: []string{"duplicate_property"},
		},
		{
			name: "duplicate field",
			file: &File{Entities: []Entity{
				{Name: "A", Properties: []Property{{Name: "id"}, {Name: "a", Field: "x"}, {Name: "b", Field: "x"}}},
			}},
			expected: []string{"duplicate_field"},
		},
		{
			name: "unknown type",
			file: &File{Entities: []Entity{
				{Name: "A", Properties: []Property{{Name: "id"}, {Name: "b", Type: "Bee"}}},
			}},
			expected: []string{"unknown_property_type"},
		},
		{
			name: "reference without type",
			file: &File{Entities: []Entity{
				{Name: "A", Properties: []Property{{Name: "id"}, {Name: "b", Reference: true}}},
			}},
			expected: []string{"reference_without_type"},
		},
		{
			name: "scalar reference",
			file: &File{Entities: []Entity{
				{Name: "A", Properties: []Property{{Name: "id"}, {Name: "b", Type: "string", Reference: true}}},
			}},
			expected: []string{"scalar_reference"},
		},
		{
			name: "missing id property",
			file: &File{Entities: []Entity{
				{Name: "A", ID: "key", Properties: []Property{{Name: "keys"}}},
			}},
			expected: []string{"missing_id_property"},
		},
		{
			name: "no id",
			file: &File{Entities: []Entity{
				{Name: "A", Properties: []Property{{Name: "name"}}},
			}},
			expected: []string{"no_id_property"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, codes(t, tt.file))
		})
	}
}

func TestValidate_Suggestions(t *testing.T) {
	f := &File{Entities: []Entity{
		{Name: "Order", Properties: []Property{{Name: "id"}, {Name: "customer", Type: "Custmer"}}},
		{Name: "Customer", Properties: []Property{{Name: "id"}}},
	}}

	diags := Validate(f)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, []string{"Customer"}, diags.Errors[0].Suggestions)
}
