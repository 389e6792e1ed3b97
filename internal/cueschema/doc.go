// Package cueschema adapts CUE values into schema types, so that data can be
// checked against CUE definitions and reported on with the same machinery as
// hand-built types.
//
// Mapping:
//
//	a | b              union
//	#A & #B (structs)  intersection
//	{a: int, b?: ...}  object, optional fields stay optional
//	[...T]             array of T
//	[A, B]             tuple
//	anything else      leaf, checked by unification
//
// A scalar field may carry @mismatch("message"); a value of the right kind
// that breaks the field's constraint is then reported with that message.
package cueschema
