// Package analyze extracts entity declarations from Go source.
//
// It uses golang.org/x/tools/go/packages with go/types to find the exported
// struct types of the loaded packages and describes each one as a schema
// entity, reading the same bson and odm struct tags as the reflection
// builder in package entity. The result can be written out as a YAML
// schema or registered into an entity.Registry directly, which lets the
// query mapper work with types the running program does not link.
//
// Key types:
//   - TypeID: package import path + type name
//   - Analyzer: loads packages and builds a schema.File
package analyze
