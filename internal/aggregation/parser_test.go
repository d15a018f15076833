package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   []any
		expected Operand
	}{
		{
			name:     "grouping and flattening",
			template: "(netPrice + surCharge) * taxrate * [0]",
			params:   []any{2},
			expected: Operation{Operator: OpMultiply, Operands: []Operand{
				Operation{Operator: OpAdd, Operands: []Operand{FieldRef("netPrice"), FieldRef("surCharge")}},
				FieldRef("taxrate"),
				Literal{Value: 2},
			}},
		},
		{
			name:     "add chain",
			template: "a + b + c",
			expected: Operation{Operator: OpAdd, Operands: []Operand{FieldRef("a"), FieldRef("b"), FieldRef("c")}},
		},
		{
			name:     "subtract does not flatten",
			template: "a - b - c",
			expected: Operation{Operator: OpSubtract, Operands: []Operand{
				Operation{Operator: OpSubtract, Operands: []Operand{FieldRef("a"), FieldRef("b")}},
				FieldRef("c"),
			}},
		},
		{
			name:     "parentheses keep nesting",
			template: "(a * b) * c",
			expected: Operation{Operator: OpMultiply, Operands: []Operand{
				Operation{Operator: OpMultiply, Operands: []Operand{FieldRef("a"), FieldRef("b")}},
				FieldRef("c"),
			}},
		},
		{
			name:     "precedence",
			template: "a + b * c",
			expected: Operation{Operator: OpAdd, Operands: []Operand{
				FieldRef("a"),
				Operation{Operator: OpMultiply, Operands: []Operand{FieldRef("b"), FieldRef("c")}},
			}},
		},
		{
			name:     "dotted path",
			template: "order.total.net % 7",
			expected: Operation{Operator: OpMod, Operands: []Operand{FieldRef("order.total.net"), Literal{Value: 7}}},
		},
		{
			name:     "negative literal",
			template: "-2 + x",
			expected: Operation{Operator: OpAdd, Operands: []Operand{Literal{Value: -2}, FieldRef("x")}},
		},
		{
			name:     "negated field",
			template: "-price",
			expected: Operation{Operator: OpMultiply, Operands: []Operand{Literal{Value: -1}, FieldRef("price")}},
		},
		{
			name:     "float and string literals",
			template: `1.5 * x + "$y"`,
			expected: Operation{Operator: OpAdd, Operands: []Operand{
				Operation{Operator: OpMultiply, Operands: []Operand{Literal{Value: 1.5}, FieldRef("x")}},
				Literal{Value: "$y"},
			}},
		},
		{
			name:     "string parameter stays literal",
			template: "a + [0]",
			params:   []any{"suffix"},
			expected: Operation{Operator: OpAdd, Operands: []Operand{FieldRef("a"), Literal{Value: "suffix"}}},
		},
		{
			name:     "single field",
			template: "(a)",
			expected: FieldRef("a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpression(tt.template, tt.params...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   []any
	}{
		{"missing parameter", "a * [1]", []any{2}},
		{"syntax", "a +", nil},
		{"call", "f(x)", nil},
		{"comparison", "a < b", nil},
		{"divide by literal zero", "a / 0", nil},
		{"mod by zero parameter", "a % [0]", []any{0}},
		{"index expression", "a[b]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpression(tt.template, tt.params...)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}
