package aggregation

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\[(\d+)\]`)

const paramPrefix = "__param"

var binaryOperators = map[token.Token]string{
	token.ADD: OpAdd,
	token.SUB: OpSubtract,
	token.MUL: OpMultiply,
	token.QUO: OpDivide,
	token.REM: OpMod,
}

// ParseExpression parses an arithmetic template such as
// "(netPrice + surCharge) * taxrate * [0]". Placeholders [i] are replaced by
// params[i] as literals. Identifiers and dotted paths become field
// references. Left-nested chains of + and * collapse into a single n-ary
// operation unless parenthesized.
func ParseExpression(template string, params ...any) (Operand, error) {
	var substErr error

	src := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		idx, _ := strconv.Atoi(m[1 : len(m)-1])
		if idx >= len(params) {
			substErr = fmt.Errorf("%w: placeholder %s has no parameter (%d given)", ErrInvalidArgument, m, len(params))
		}

		return paramPrefix + strconv.Itoa(idx)
	})
	if substErr != nil {
		return nil, substErr
	}

	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse expression %q: %v", ErrInvalidArgument, template, err)
	}

	p := &exprParser{template: template, params: params}

	return p.convert(expr)
}

type exprParser struct {
	template string
	params   []any
}

func (p *exprParser) convert(expr ast.Expr) (Operand, error) {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return p.convert(e.X)

	case *ast.BinaryExpr:
		return p.convertBinary(e)

	case *ast.UnaryExpr:
		return p.convertUnary(e)

	case *ast.Ident:
		return p.convertIdent(e), nil

	case *ast.SelectorExpr:
		path, ok := selectorPath(e)
		if !ok {
			return nil, p.unsupported(expr)
		}

		return FieldRef(path), nil

	case *ast.BasicLit:
		return p.convertLiteral(e)

	default:
		return nil, p.unsupported(expr)
	}
}

func (p *exprParser) convertBinary(e *ast.BinaryExpr) (Operand, error) {
	op, ok := binaryOperators[e.Op]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported operator %s in %q", ErrInvalidArgument, e.Op, p.template)
	}

	left, err := p.convert(e.X)
	if err != nil {
		return nil, err
	}

	right, err := p.convert(e.Y)
	if err != nil {
		return nil, err
	}

	if op == OpDivide || op == OpMod {
		if isZeroLiteral(right) {
			return nil, fmt.Errorf("%w: %s by zero in %q", ErrInvalidArgument, op, p.template)
		}
	}

	// a + b + c parses as (a + b) + c; fold it into one $add.
	if nested, isBinary := e.X.(*ast.BinaryExpr); isBinary && nested.Op == e.Op && (op == OpAdd || op == OpMultiply) {
		if chain, isOp := left.(Operation); isOp {
			chain.Operands = append(chain.Operands, right)
			return chain, nil
		}
	}

	return Operation{Operator: op, Operands: []Operand{left, right}}, nil
}

func (p *exprParser) convertUnary(e *ast.UnaryExpr) (Operand, error) {
	x, err := p.convert(e.X)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.ADD:
		return x, nil
	case token.SUB:
		if lit, ok := x.(Literal); ok {
			switch v := lit.Value.(type) {
			case int:
				return Literal{Value: -v}, nil
			case float64:
				return Literal{Value: -v}, nil
			}
		}

		return Operation{Operator: OpMultiply, Operands: []Operand{Literal{Value: -1}, x}}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported operator %s in %q", ErrInvalidArgument, e.Op, p.template)
	}
}

func (p *exprParser) convertIdent(e *ast.Ident) Operand {
	if idx, ok := strings.CutPrefix(e.Name, paramPrefix); ok {
		if i, err := strconv.Atoi(idx); err == nil && i < len(p.params) {
			return Literal{Value: p.params[i]}
		}
	}

	switch e.Name {
	case "true":
		return Literal{Value: true}
	case "false":
		return Literal{Value: false}
	case "nil", "null":
		return Literal{Value: nil}
	}

	return FieldRef(e.Name)
}

func (p *exprParser) convertLiteral(e *ast.BasicLit) (Operand, error) {
	switch e.Kind {
	case token.INT:
		v, err := strconv.ParseInt(e.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad integer %s in %q", ErrInvalidArgument, e.Value, p.template)
		}

		return Literal{Value: int(v)}, nil
	case token.FLOAT:
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %s in %q", ErrInvalidArgument, e.Value, p.template)
		}

		return Literal{Value: v}, nil
	case token.STRING, token.CHAR:
		s, err := strconv.Unquote(e.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: bad string %s in %q", ErrInvalidArgument, e.Value, p.template)
		}

		return Literal{Value: s}, nil
	default:
		return nil, p.unsupported(e)
	}
}

func (p *exprParser) unsupported(expr ast.Expr) error {
	return fmt.Errorf("%w: unsupported expression %T in %q", ErrInvalidArgument, expr, p.template)
}

// selectorPath turns a.b.c into "a.b.c".
func selectorPath(e *ast.SelectorExpr) (string, bool) {
	switch x := e.X.(type) {
	case *ast.Ident:
		return x.Name + "." + e.Sel.Name, true
	case *ast.SelectorExpr:
		prefix, ok := selectorPath(x)
		if !ok {
			return "", false
		}

		return prefix + "." + e.Sel.Name, true
	default:
		return "", false
	}
}
