package aggregation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Arithmetic operators.
const (
	OpAdd      = "$add"
	OpSubtract = "$subtract"
	OpMultiply = "$multiply"
	OpDivide   = "$divide"
	OpMod      = "$mod"
)

// Operand is a node of an arithmetic expression.
type Operand interface {
	Render(ctx Context) any
}

// FieldRef references an input field. It renders as "$<field>".
type FieldRef string

// Render implements Operand.
func (f FieldRef) Render(ctx Context) any {
	return "$" + ctx.Reference(string(f))
}

// Literal is a constant operand.
type Literal struct {
	Value any
}

// Render implements Operand. Strings that would read as field paths are
// wrapped in $literal.
func (l Literal) Render(Context) any {
	if s, ok := l.Value.(string); ok && strings.HasPrefix(s, "$") {
		return bson.D{{Key: "$literal", Value: s}}
	}

	return l.Value
}

// Operation applies an arithmetic operator to its operands, in order.
type Operation struct {
	Operator string
	Operands []Operand
}

// Render implements Operand: {"<op>": [operand, ...]}.
func (o Operation) Render(ctx Context) any {
	args := lo.Map(o.Operands, func(op Operand, _ int) any { return op.Render(ctx) })

	return bson.D{{Key: o.Operator, Value: bson.A(args)}}
}

// String renders the operation without a context, for debugging.
func (o Operation) String() string {
	return fmt.Sprint(o.Render(DefaultContext))
}

// operandOf turns a builder argument into an operand: strings reference
// fields, operands are used as they are, anything else is a literal.
func operandOf(v any) Operand {
	switch typed := v.(type) {
	case Operand:
		return typed
	case string:
		return FieldRef(typed)
	default:
		return Literal{Value: v}
	}
}

// isZeroLiteral reports whether operand is a numeric literal equal to zero.
func isZeroLiteral(operand Operand) bool {
	lit, ok := operand.(Literal)
	if !ok || lit.Value == nil {
		return false
	}

	rv := reflect.ValueOf(lit.Value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	default:
		return false
	}
}
