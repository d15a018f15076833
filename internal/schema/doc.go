// Package schema reads entity declarations from YAML files.
//
// A schema file declares the entities the query mapper resolves criteria
// keys against, for documents that have no Go type in the calling program:
//
//	version: "1"
//	entities:
//	  - name: Sample
//	    collection: samples
//	    id: foo
//	    properties:
//	      - name: foo
//	      - name: reference
//	        type: Reference
//	        reference: true
//	      - name: customerName
//	        field: customer_name
//	  - name: Reference
//	    properties:
//	      - name: id
//
// The identifier is the property named by "id", or a property named "id"
// when "id" is omitted. Property types are either scalar names (string,
// int, objectId, ...) or names of other declared entities.
package schema
