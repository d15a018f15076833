package aggregation

import (
	"errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StageProject is the key of the projection stage.
const StageProject = "$project"

// ErrInvalidArgument is wrapped by every builder error.
var ErrInvalidArgument = errors.New("invalid argument")

// projection is one output key of a $project stage.
type projection struct {
	key   string
	value Operand
}

// ProjectionOperation accumulates field projections and renders a $project
// stage. It is immutable.
type ProjectionOperation struct {
	projections []projection
	err         error
}

// Project creates a projection including the given fields as they are.
func Project(names ...string) *ProjectionOperation {
	op, _ := ProjectFields(Fields(names...))
	return op
}

// ProjectFields creates a projection from a field set. Plain fields are
// included, aliased fields reference their target.
func ProjectFields(fields *FieldSet) (*ProjectionOperation, error) {
	if fields == nil {
		return nil, fmt.Errorf("%w: fields must not be nil", ErrInvalidArgument)
	}

	op := &ProjectionOperation{}
	for _, f := range fields.All() {
		if f.Aliased() {
			op = op.with(projection{key: f.Name, value: FieldRef(f.Target)})
			continue
		}

		op = op.with(projection{key: f.Name, value: Literal{Value: 1}})
	}

	return op, nil
}

// And starts the declaration of a projected field.
func (p *ProjectionOperation) And(name string) *FieldBuilder {
	return &FieldBuilder{op: p, name: name, err: p.err}
}

// AndInclude includes the given fields.
func (p *ProjectionOperation) AndInclude(names ...string) *ProjectionOperation {
	op := p
	for _, name := range names {
		op = op.with(projection{key: name, value: Literal{Value: 1}})
	}

	return op
}

// AndExclude excludes the given fields. Only _id can be excluded in a
// projection that includes fields.
func (p *ProjectionOperation) AndExclude(names ...string) *ProjectionOperation {
	op := p
	for _, name := range names {
		if name != UnderscoreID {
			return op.withErr(fmt.Errorf("%w: only %s can be excluded, got %q", ErrInvalidArgument, UnderscoreID, name))
		}

		op = op.with(projection{key: name, value: Literal{Value: 0}})
	}

	return op
}

// AndExpression starts an expression projection; see ParseExpression.
func (p *ProjectionOperation) AndExpression(template string, params ...any) *ExpressionBuilder {
	expr, err := ParseExpression(template, params...)
	if p.err != nil {
		err = p.err
	}

	return &ExpressionBuilder{op: p, expr: expr, err: err}
}

// Err returns the first error recorded by the declarations.
func (p *ProjectionOperation) Err() error {
	return p.err
}

// Keys returns the output keys in declaration order.
func (p *ProjectionOperation) Keys() []string {
	keys := make([]string, len(p.projections))
	for i, pr := range p.projections {
		keys[i] = pr.key
	}

	return keys
}

// ToDocument renders {"$project": {...}}. A nil ctx means DefaultContext.
func (p *ProjectionOperation) ToDocument(ctx Context) (bson.D, error) {
	if p.err != nil {
		return nil, p.err
	}

	if ctx == nil {
		ctx = DefaultContext
	}

	inner := make(bson.D, 0, len(p.projections))
	for _, pr := range p.projections {
		inner = append(inner, bson.E{Key: pr.key, Value: pr.value.Render(ctx)})
	}

	return bson.D{{Key: StageProject, Value: inner}}, nil
}

// with returns a copy holding pr. Declaring a key again replaces the earlier
// projection in place.
func (p *ProjectionOperation) with(pr projection) *ProjectionOperation {
	next := &ProjectionOperation{projections: slices.Clone(p.projections), err: p.err}

	for i := range next.projections {
		if next.projections[i].key == pr.key {
			next.projections[i] = pr
			return next
		}
	}

	next.projections = append(next.projections, pr)

	return next
}

func (p *ProjectionOperation) withErr(err error) *ProjectionOperation {
	if p.err != nil {
		return p
	}

	return &ProjectionOperation{projections: p.projections, err: err}
}

// FieldBuilder declares the projection of a single field.
type FieldBuilder struct {
	op   *ProjectionOperation
	name string
	expr Operand
	err  error
}

// Plus adds operand: {$add: [field, operand]}.
func (b *FieldBuilder) Plus(operand any) *FieldBuilder {
	return b.apply(OpAdd, operand)
}

// Minus subtracts operand.
func (b *FieldBuilder) Minus(operand any) *FieldBuilder {
	return b.apply(OpSubtract, operand)
}

// Multiply multiplies by operand.
func (b *FieldBuilder) Multiply(operand any) *FieldBuilder {
	return b.apply(OpMultiply, operand)
}

// Divide divides by operand, which must not be a literal zero.
func (b *FieldBuilder) Divide(operand any) *FieldBuilder {
	return b.apply(OpDivide, operand)
}

// Mod takes the remainder of the division by operand, which must not be a
// literal zero.
func (b *FieldBuilder) Mod(operand any) *FieldBuilder {
	return b.apply(OpMod, operand)
}

// As finalizes the declaration under alias.
func (b *FieldBuilder) As(alias string) *ProjectionOperation {
	return b.finish(alias)
}

// PreviousOperation projects the _id of the previous stage into the field.
func (b *FieldBuilder) PreviousOperation() *ProjectionOperation {
	return b.operation().with(projection{key: b.name, value: FieldRef(UnderscoreID)})
}

// Operation finalizes the declaration under the field name.
func (b *FieldBuilder) Operation() *ProjectionOperation {
	return b.finish(b.name)
}

// And finalizes the declaration and starts the next one.
func (b *FieldBuilder) And(name string) *FieldBuilder {
	return b.Operation().And(name)
}

// AndInclude finalizes the declaration and includes the given fields.
func (b *FieldBuilder) AndInclude(names ...string) *ProjectionOperation {
	return b.Operation().AndInclude(names...)
}

// AndExclude finalizes the declaration and excludes the given fields.
func (b *FieldBuilder) AndExclude(names ...string) *ProjectionOperation {
	return b.Operation().AndExclude(names...)
}

// AndExpression finalizes the declaration and starts an expression.
func (b *FieldBuilder) AndExpression(template string, params ...any) *ExpressionBuilder {
	return b.Operation().AndExpression(template, params...)
}

// ToDocument finalizes the declaration and renders the stage.
func (b *FieldBuilder) ToDocument(ctx Context) (bson.D, error) {
	return b.Operation().ToDocument(ctx)
}

// Err returns the error recorded so far, if any.
func (b *FieldBuilder) Err() error {
	return b.err
}

func (b *FieldBuilder) apply(operator string, v any) *FieldBuilder {
	next := *b
	if b.err != nil {
		return &next
	}

	operand := operandOf(v)
	if (operator == OpDivide || operator == OpMod) && isZeroLiteral(operand) {
		next.err = fmt.Errorf("%w: %s of %q by zero", ErrInvalidArgument, operator, b.name)
		return &next
	}

	next.expr = Operation{Operator: operator, Operands: []Operand{b.current(), operand}}

	return &next
}

// current is the expression built so far, the field itself at first.
func (b *FieldBuilder) current() Operand {
	if b.expr == nil {
		return FieldRef(b.name)
	}

	return b.expr
}

func (b *FieldBuilder) operation() *ProjectionOperation {
	if b.err != nil {
		return b.op.withErr(b.err)
	}

	return b.op
}

func (b *FieldBuilder) finish(key string) *ProjectionOperation {
	return b.operation().with(projection{key: key, value: b.current()})
}

// ExpressionBuilder holds a parsed expression until it is given an alias.
type ExpressionBuilder struct {
	op   *ProjectionOperation
	expr Operand
	err  error
}

// As finalizes the expression under alias.
func (b *ExpressionBuilder) As(alias string) *ProjectionOperation {
	if b.err != nil {
		return b.op.withErr(b.err)
	}

	return b.op.with(projection{key: alias, value: b.expr})
}

// Err returns the parse error, if any.
func (b *ExpressionBuilder) Err() error {
	return b.err
}
