// Package common holds small helpers shared by the entity builders.
package common

import (
	"path"
	"unicode"
)

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// LowerCamel turns a Go identifier into its lower camel case property form.
// Examples:
//   - "SomeString" -> "someString"
//   - "ID" -> "id"
//   - "HTTPServer" -> "httpServer"
//   - "withDbRef" -> "withDbRef"
func LowerCamel(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)

	// Count the leading upper case run.
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n == 1 || n == len(runes):
		// "Foo" -> "foo", "ID" -> "id"
		for i := range n {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		// "HTTPServer" -> "httpServer": the last upper rune starts the next word.
		for i := range n - 1 {
			runes[i] = unicode.ToLower(runes[i])
		}
	}

	return string(runes)
}
