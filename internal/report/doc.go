// Package report turns the failure forest produced by validate.Decode into a
// few readable sentences.
//
// A failed decode yields one failure chain per type alternative that was
// tried, so a single mistake inside a union can produce dozens of chains.
// The reporter walks the chains one nesting level at a time:
//
//  1. normalize: pop the head entry of every chain and note whether the
//     offending value stays the same all the way down (exhaustion)
//  2. group: bucket records by key in first-seen order
//  3. classify: emit type mismatches and one combined missing-property
//     message for the level
//  4. select: under a union, keep only the branches whose shape is most
//     similar to the actual value
//  5. descend into the surviving branches, extending the reported path
//
// One stops at the first message; All collects every message from every
// surviving branch. Both are pure functions of their input.
package report
