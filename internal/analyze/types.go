package analyze

import (
	"go/types"
	"strings"

	"docmapper/internal/common"
)

// TypeID uniquely identifies a named type by package path and name.
type TypeID struct {
	PkgPath string
	Name    string
}

// String returns "pkgpath.Name".
func (id TypeID) String() string {
	if id.PkgPath == "" {
		return id.Name
	}

	return id.PkgPath + "." + id.Name
}

// typeIDOf returns the id of a named type.
func typeIDOf(named *types.Named) TypeID {
	obj := named.Obj()
	if obj.Pkg() == nil {
		return TypeID{Name: obj.Name()}
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
}

// structInfo is an exported struct type found in a loaded package.
type structInfo struct {
	id         TypeID
	st         *types.Struct
	collection string
}

const bsonPkg = "go.mongodb.org/mongo-driver/v2/bson"

// Named types stored as scalars, by TypeID.String().
var scalarNamedTypes = map[string]string{
	"time.Time":                "date",
	"math/big.Int":             "int64",
	bsonPkg + ".ObjectID":      "objectId",
	bsonPkg + ".Decimal128":    "decimal",
	bsonPkg + ".Timestamp":     "timestamp",
	bsonPkg + ".DateTime":      "date",
	bsonPkg + ".Binary":        "binary",
	bsonPkg + ".Regex":         "regex",
	bsonPkg + ".RawValue":      "any",
	bsonPkg + ".D":             "any",
	bsonPkg + ".M":             "any",
	bsonPkg + ".A":             "any",
	bsonPkg + ".Raw":           "any",
	bsonPkg + ".JavaScript":    "string",
	bsonPkg + ".Symbol":        "string",
	bsonPkg + ".DBPointer":     "any",
	bsonPkg + ".MinKey":        "any",
	bsonPkg + ".MaxKey":        "any",
	bsonPkg + ".Undefined":     "any",
	bsonPkg + ".Null":          "any",
	bsonPkg + ".CodeWithScope": "any",
}

// basicName maps a basic type to a schema scalar type.
func basicName(b *types.Basic) string {
	info := b.Info()

	switch {
	case info&types.IsBoolean != 0:
		return "bool"
	case info&types.IsString != 0:
		return "string"
	case info&types.IsFloat != 0:
		return "float64"
	case info&types.IsInteger == 0:
		return "any"
	}

	switch b.Kind() {
	case types.Int64, types.Uint64, types.Uint32, types.Uint:
		return "int64"
	case types.Int32:
		return "int32"
	default:
		return "int"
	}
}

// isStringer reports whether named has a String() string method.
func isStringer(named *types.Named) bool {
	obj, _, _ := types.LookupFieldOrMethod(named, true, named.Obj().Pkg(), "String")

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)

	return ok && sig.Params().Len() == 0 && sig.Results().Len() == 1 &&
		types.Identical(sig.Results().At(0).Type(), types.Typ[types.String])
}

// qualifiedName is the entity name used when two packages declare a struct
// with the same name, e.g. "store.Order".
func (id TypeID) qualifiedName() string {
	return strings.Join([]string{common.PkgAlias(id.PkgPath), id.Name}, ".")
}
