// Package value provides the sealed JSON-like value model that validation
// failures carry.
//
// This package contains the data model only. schema, validate and report
// import value; value imports nothing internal.
//
// Key design constraints:
//   - A nil Value means "undefined" (the property is absent), which is
//     distinct from Null (the property is present and null)
//   - Object keys are always iterated through SortedKeys (RFC 8785 order)
//   - Strings are compared and serialized NFC-normalized
package value
