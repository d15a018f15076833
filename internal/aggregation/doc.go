// Package aggregation builds aggregation pipeline stages, most notably the
// $project stage.
//
// A projection is declared fluently and rendered once:
//
//	op := aggregation.Project("foo").
//	    And("foobar").As("bar").
//	    And("price").Multiply("qty").As("total").
//	    AndExpression("(netPrice + surCharge) * [0]", 2).As("gross").
//	    AndExclude("_id")
//
//	doc, err := op.ToDocument(aggregation.DefaultContext)
//
// renders
//
//	{$project: {foo: 1, bar: "$foobar", total: {$multiply: ["$price", "$qty"]},
//	    gross: {$multiply: [{$add: ["$netPrice", "$surCharge"]}, 2]}, _id: 0}}
//
// Builders are immutable: every call returns a new value, so a partially
// declared projection can be shared and extended independently.
//
// # Operands
//
// Arithmetic operands given as strings (or FieldRef) are field references
// and are rendered with the "$" prefix. Everything else is a literal and is
// rendered unchanged.
//
// # Errors
//
// Invalid declarations (division or modulo by a literal zero, excluding a
// field other than _id, an unparsable expression) are detected when they are
// declared. The error sticks to the builder, is reported by Err and is
// returned by ToDocument. All such errors wrap ErrInvalidArgument.
package aggregation
