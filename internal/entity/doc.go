// Package entity holds the persistent entity metadata consulted by the
// query mapper and the typed aggregation context.
//
// Entities come from three places:
//   - Go struct types, inspected lazily with reflect (Registry.Entity)
//   - YAML schema files (package schema)
//   - Go source packages loaded with go/packages (package analyze)
//
// Struct tags understood by the reflection builder:
//
//	type Order struct {
//	    ID       string    `bson:"_id"`          // identifier ("ID"/"Id" fields are detected too)
//	    Customer *Customer `odm:"ref"`           // stored as a DBRef
//	    Total    int       `bson:"total_cents"`  // field name override
//	    Notes    []Note                          // nested entity, followed lazily
//	}
//
// A type can choose its collection name by implementing CollectionNamer;
// otherwise the lower camel case type name is used.
//
// The registry is build-once, read-many. Lazy registration of reflected
// types is guarded, so a Registry may be shared between goroutines.
package entity
