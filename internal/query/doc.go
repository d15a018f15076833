// Package query maps criteria documents written against entity properties
// into documents the driver can send as is.
//
// Mapping is a recursive rewrite of the criteria document:
//   - $or, $and and $nor lists are mapped element by element
//   - keys naming the identifier property become "_id" and their values are
//     converted to ObjectIDs when they are identifier-shaped
//   - dotted property paths are resolved against the entity and every
//     segment is replaced by its document field name
//   - values of reference properties become DBRefs, also inside operator
//     documents such as {$in: [...]}
//   - enum values become their names
//   - nested documents are mapped against the nested entity
//
// Anything the mapper does not understand is passed through unchanged; the
// mapper never fails. MapDocumentWithDiagnostics reports the property paths
// that could not be resolved.
package query
