package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"

	"golang.org/x/tools/go/packages"

	"docmapper/internal/common"
	"docmapper/internal/entity"
	"docmapper/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

const collectionMethod = "CollectionName"

// Analyzer loads Go packages and describes their structs as entities.
type Analyzer struct {
	dir     string
	structs map[TypeID]*structInfo
	order   []TypeID
	names   map[TypeID]string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory package patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		structs: make(map[TypeID]*structInfo),
		names:   make(map[TypeID]string),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and returns a schema declaring
// every exported struct type found in them. Patterns are standard Go
// package patterns (e.g., "./store", "docmapper/warehouse").
func (a *Analyzer) LoadPackages(patterns ...string) (*schema.File, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	a.assignNames()

	return a.buildFile(), nil
}

// Register loads the packages and registers their entities into r.
func (a *Analyzer) Register(r *entity.Registry, patterns ...string) error {
	f, err := a.LoadPackages(patterns...)
	if err != nil {
		return err
	}

	return schema.Register(f, r)
}

// EntityName returns the entity name assigned to a loaded struct type.
func (a *Analyzer) EntityName(id TypeID) (string, bool) {
	name, ok := a.names[id]
	return name, ok
}

// processPackage collects the exported, non-generic struct types of pkg.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	collections := collectionNames(pkg)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}
		if _, seen := a.structs[id]; seen {
			continue
		}

		collection := collections[name]
		if collection == "" {
			collection = common.LowerCamel(name)
		}

		a.structs[id] = &structInfo{id: id, st: st, collection: collection}
		a.order = append(a.order, id)
	}
}

// collectionNames finds CollectionName methods returning a string literal.
func collectionNames(pkg *packages.Package) map[string]string {
	out := map[string]string{}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || fn.Name.Name != collectionMethod || fn.Body == nil {
				continue
			}

			recv := receiverName(fn.Recv.List[0].Type)
			if recv == "" || len(fn.Body.List) != 1 {
				continue
			}

			ret, ok := fn.Body.List[0].(*ast.ReturnStmt)
			if !ok || len(ret.Results) != 1 {
				continue
			}

			lit, ok := ret.Results[0].(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}

			if s, err := strconv.Unquote(lit.Value); err == nil {
				out[recv] = s
			}
		}
	}

	return out
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}

// assignNames names every struct by its type name, qualified by package
// name when the plain name is declared by more than one package.
func (a *Analyzer) assignNames() {
	count := map[string]int{}
	for _, id := range a.order {
		count[id.Name]++
	}

	for _, id := range a.order {
		if count[id.Name] > 1 {
			a.names[id] = id.qualifiedName()
			continue
		}

		a.names[id] = id.Name
	}
}

func (a *Analyzer) buildFile() *schema.File {
	f := &schema.File{Version: "1"}

	for _, id := range a.order {
		info := a.structs[id]

		e := schema.Entity{
			Name:       a.names[id],
			Collection: info.collection,
		}

		e.Properties, e.ID = a.properties(info.st)
		f.Entities = append(f.Entities, e)
	}

	return f
}

// properties describes the fields of st and returns the identifier
// property name. Explicitly tagged identifiers win over a field named ID.
func (a *Analyzer) properties(st *types.Struct) ([]schema.Property, string) {
	var (
		props    []schema.Property
		explicit string
		implicit string
	)

	a.walkFields(st, func(field *types.Var, tag entity.FieldTag) {
		name := common.LowerCamel(field.Name())

		p := schema.Property{Name: name, Reference: tag.Reference}
		if tag.Name != "" && tag.Name != name && !tag.ID {
			p.Field = tag.Name
		}

		p.Type, p.Many, p.Keyed = a.typeName(field.Type())

		switch {
		case tag.ID && explicit == "":
			explicit = name
		case name == "id" && implicit == "":
			implicit = name
		}

		props = append(props, p)
	})

	if explicit != "" {
		return props, explicit
	}

	return props, implicit
}

// walkFields calls fn for every persisted field of st, descending into
// inlined structs.
func (a *Analyzer) walkFields(st *types.Struct, fn func(*types.Var, entity.FieldTag)) {
	for i := range st.NumFields() {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		tag := entity.ParseTag(reflect.StructTag(st.Tag(i)))
		if tag.Skip {
			continue
		}

		if tag.Inline {
			if inner, ok := field.Type().Underlying().(*types.Struct); ok {
				a.walkFields(inner, fn)
				continue
			}
		}

		fn(field, tag)
	}
}

// typeName returns the schema type of a field type, whether it holds many
// values and whether those are keyed by a map.
func (a *Analyzer) typeName(t types.Type) (name string, many, keyed bool) {
	for {
		switch tt := t.(type) {
		case *types.Pointer:
			t = tt.Elem()
			continue
		case *types.Slice:
			if isByte(tt.Elem()) {
				return "binary", many, keyed
			}

			many = true
			t = tt.Elem()

			continue
		case *types.Array:
			if isByte(tt.Elem()) {
				return "binary", many, keyed
			}

			many = true
			t = tt.Elem()

			continue
		case *types.Map:
			keyed = keyed || !many
			many = true
			t = tt.Elem()

			continue
		case *types.Alias:
			t = types.Unalias(tt)
			continue
		}

		return a.elementName(t), many, keyed
	}
}

func (a *Analyzer) elementName(t types.Type) string {
	switch tt := t.(type) {
	case *types.Basic:
		return basicName(tt)
	case *types.Named:
		id := typeIDOf(tt)

		if name, ok := a.names[id]; ok {
			return name
		}

		if scalar, ok := scalarNamedTypes[id.String()]; ok {
			return scalar
		}

		if basic, ok := tt.Underlying().(*types.Basic); ok {
			// Enums are stored by name.
			if basic.Info()&types.IsInteger != 0 && isStringer(tt) {
				return "string"
			}

			return basicName(basic)
		}
	}

	return "any"
}

func isByte(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Kind() == types.Byte
}
